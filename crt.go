package shindo

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// NewTLSConfig creates the client TLS configuration for ssl:// brokers.
// An empty cafile trusts the system pool; an empty crtfile sends no client
// certificate.
func NewTLSConfig(cafile, crtfile, keyfile string) (*tls.Config, error) {
	tlsconfig := &tls.Config{
		ClientAuth: tls.NoClientCert,
	}
	if cafile != "" {
		ca, err := os.ReadFile(cafile)
		if err != nil {
			return nil, err
		}
		certpool := x509.NewCertPool()
		if !certpool.AppendCertsFromPEM(ca) {
			return nil, fmt.Errorf("%s: no certificate found", cafile)
		}
		tlsconfig.RootCAs = certpool
		// the broker certificate is self-signed and carries no host name
		tlsconfig.InsecureSkipVerify = true
	}
	if crtfile != "" {
		cer, err := tls.LoadX509KeyPair(crtfile, keyfile)
		if err != nil {
			return nil, err
		}
		tlsconfig.Certificates = []tls.Certificate{cer}
	}
	return tlsconfig, nil
}

// TLSConfig builds the TLS configuration from the cafile, crtfile and
// keyfile entries.
func (c *Config) TLSConfig() (*tls.Config, error) {
	return NewTLSConfig(c.Cafile, c.Crtfile, c.Keyfile)
}
