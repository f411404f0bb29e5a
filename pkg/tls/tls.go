package tls

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
)

// NewTLSConfigClient при isEnabled=false возвращает nil, nil.
func NewTLSConfigClient(isEnabled bool, caCertFilepath, certFilepath, keyFilepath string) (*tls.Config, error) {
	if !isEnabled {
		return nil, nil //nolint:nilnil
	}

	certPool, err := getCertPool(caCertFilepath)
	if err != nil {
		return nil, err
	}

	result := &tls.Config{
		RootCAs:    certPool,
		MinVersion: tls.VersionTLS12,
	}

	// клиентский сертификат опционален, CGRateS обычно без mTLS
	if certFilepath != "" || keyFilepath != "" {
		cert, err := tls.LoadX509KeyPair(certFilepath, keyFilepath)
		if err != nil {
			return nil, fmt.Errorf("failed to load X509KeyPair (%s, %s): %w", certFilepath, keyFilepath, err)
		}

		result.Certificates = []tls.Certificate{cert}
	}

	return result, nil
}

func getCertPool(caCertFilepath string) (*x509.CertPool, error) {
	if caCertFilepath == "" {
		return nil, nil //nolint:nilnil // системные корневые сертификаты
	}

	rootCABytes, err := os.ReadFile(caCertFilepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read ca file path (%s): %w", caCertFilepath, err)
	}

	certPool := x509.NewCertPool()

	if ok := certPool.AppendCertsFromPEM(rootCABytes); !ok {
		return nil, errors.New("failed to add root CA to cert pool") //nolint:err113
	}

	return certPool, nil
}
