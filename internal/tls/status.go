// SPDX-License-Identifier: MIT
package tls

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Directory names certmagic uses for the Let's Encrypt CAs
var caDirs = []string{
	"acme-v02.api.letsencrypt.org-directory",
	"acme-staging-v02.api.letsencrypt.org-directory",
}

// CertificateStatus represents the status of a managed certificate
type CertificateStatus struct {
	Domain          string
	Issuer          string
	NotBefore       time.Time
	NotAfter        time.Time
	DaysUntilExpiry int
}

// ReadStatus reports the certificates already provisioned under cfg.CertDir.
// Domains without a certificate yet are skipped.
func ReadStatus(cfg *Config, now time.Time) ([]CertificateStatus, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	var statuses []CertificateStatus
	for _, domain := range cfg.AllowedDomains() {
		cert, err := findCertificate(cfg.CertDir, domain)
		if err != nil || cert == nil {
			continue
		}

		statuses = append(statuses, CertificateStatus{
			Domain:          domain,
			Issuer:          cert.Issuer.CommonName,
			NotBefore:       cert.NotBefore,
			NotAfter:        cert.NotAfter,
			DaysUntilExpiry: int(cert.NotAfter.Sub(now).Hours() / 24),
		})
	}

	return statuses, nil
}

// findCertificate looks in certmagic's layout:
// {certDir}/certificates/{ca}/{domain}/{domain}.crt
func findCertificate(certDir, domain string) (*x509.Certificate, error) {
	for _, ca := range caDirs {
		path := filepath.Join(certDir, "certificates", ca, domain, domain+".crt")
		certPEM, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		block, _ := pem.Decode(certPEM)
		if block == nil {
			return nil, fmt.Errorf("%s: not a PEM certificate", path)
		}
		return x509.ParseCertificate(block.Bytes)
	}
	return nil, nil
}
