// SPDX-License-Identifier: MIT
package tls

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "disabled", cfg: Config{}},
		{name: "complete", cfg: Config{Enabled: true, Email: "ops@example.com", BaseDomain: "demo.example.com"}},
		{name: "missing email", cfg: Config{Enabled: true, BaseDomain: "demo.example.com"}, wantErr: true},
		{name: "localhost", cfg: Config{Enabled: true, Email: "ops@example.com", BaseDomain: "localhost"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAllowedDomains(t *testing.T) {
	cfg := Config{
		BaseDomain: "Demo.Example.com",
		Domains:    []string{"www.example.com", "demo.example.com", " ", "www.example.com"},
	}

	got := cfg.AllowedDomains()
	want := []string{"demo.example.com", "www.example.com"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, got)
		}
	}
}

func writeTestCert(t *testing.T, dir, domain string, notAfter time.Time) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: domain},
		Issuer:       pkix.Name{CommonName: domain},
		DNSNames:     []string{domain},
		NotBefore:    notAfter.Add(-90 * 24 * time.Hour),
		NotAfter:     notAfter,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatal(err)
	}

	certDir := filepath.Join(dir, "certificates", caDirs[1], domain)
	if err := os.MkdirAll(certDir, 0700); err != nil {
		t.Fatal(err)
	}
	data := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	if err := os.WriteFile(filepath.Join(certDir, domain+".crt"), data, 0600); err != nil {
		t.Fatal(err)
	}
}

func TestReadStatus(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	writeTestCert(t, dir, "demo.example.com", now.Add(30*24*time.Hour))

	cfg := &Config{CertDir: dir, BaseDomain: "demo.example.com", Domains: []string{"www.example.com"}}
	statuses, err := ReadStatus(cfg, now)
	if err != nil {
		t.Fatalf("ReadStatus failed: %v", err)
	}

	if len(statuses) != 1 {
		t.Fatalf("Expected 1 provisioned certificate, got %d", len(statuses))
	}
	if statuses[0].Domain != "demo.example.com" {
		t.Errorf("Unexpected domain %s", statuses[0].Domain)
	}
	if statuses[0].DaysUntilExpiry != 30 {
		t.Errorf("Expected 30 days until expiry, got %d", statuses[0].DaysUntilExpiry)
	}
}
