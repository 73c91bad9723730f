// SPDX-License-Identifier: MIT
package tls

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"

	"github.com/caddyserver/certmagic"
	"github.com/thatcatcamp/picodemo/internal/logging"
)

// Manager handles certificate provisioning and management
type Manager struct {
	cfg       *Config
	certmagic *certmagic.Config
	issuer    *certmagic.ACMEIssuer
	logger    *logging.Logger
}

// NewManager creates a new TLS manager and starts managing the configured domains
func NewManager(ctx context.Context, cfg *Config, logger *logging.Logger) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = logging.Nop()
	}

	var magicCfg *certmagic.Config
	cache := certmagic.NewCache(certmagic.CacheOptions{
		GetConfigForCert: func(certmagic.Certificate) (*certmagic.Config, error) {
			return magicCfg, nil
		},
	})

	magicCfg = certmagic.New(cache, certmagic.Config{
		Storage: &certmagic.FileStorage{Path: cfg.CertDir},
	})

	ca := certmagic.LetsEncryptProductionCA
	if cfg.Staging {
		ca = certmagic.LetsEncryptStagingCA
	}
	issuer := certmagic.NewACMEIssuer(magicCfg, certmagic.ACMEIssuer{
		CA:     ca,
		Email:  cfg.Email,
		Agreed: true,
	})
	magicCfg.Issuers = []certmagic.Issuer{issuer}

	m := &Manager{
		cfg:       cfg,
		certmagic: magicCfg,
		issuer:    issuer,
		logger:    logger.With("component", "tls"),
	}

	if err := m.manage(ctx); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Manager) manage(ctx context.Context) error {
	domains := m.cfg.AllowedDomains()
	m.logger.Info("managing certificates", "count", len(domains), "domains", domains)

	if err := m.certmagic.ManageAsync(ctx, domains); err != nil {
		return fmt.Errorf("failed to manage domains: %w", err)
	}
	return nil
}

// HTTPChallengeHandler answers ACME HTTP-01 challenges for the managed
// domains and passes every other request to next
func (m *Manager) HTTPChallengeHandler(next http.Handler) http.Handler {
	return m.issuer.HTTPChallengeHandler(next)
}

// GetTLSConfig returns TLS config for HTTPS server
func (m *Manager) GetTLSConfig() *tls.Config {
	return m.certmagic.TLSConfig()
}
