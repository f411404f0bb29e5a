package helpers

import (
	"bytes"
	cryptorand "crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"time"
)

// MTLSData тестовые данные, клиентские и серверные сертификаты, а так же CA
type MTLSData struct {
	ServerTLSConfig *tls.Config
	CABytes         []byte
	ClientCertBytes []byte
	ClientKeyBytes  []byte
}

// MTLSFiles пути к PEM-файлам клиента.
type MTLSFiles struct {
	CA   string
	Cert string
	Key  string
}

// WriteClientFiles сохраняет CA и клиентскую пару в dir.
func (m *MTLSData) WriteClientFiles(dir string) (MTLSFiles, error) {
	const perm = 0600

	files := MTLSFiles{
		CA:   filepath.Join(dir, "ca.pem"),
		Cert: filepath.Join(dir, "client.pem"),
		Key:  filepath.Join(dir, "client.key"),
	}

	for path, data := range map[string][]byte{
		files.CA:   m.CABytes,
		files.Cert: m.ClientCertBytes,
		files.Key:  m.ClientKeyBytes,
	} {
		if err := os.WriteFile(path, data, perm); err != nil {
			return MTLSFiles{}, fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	return files, nil
}

func NewMTLSData() (*MTLSData, error) {
	now := time.Now()
	subjectCA := pkix.Name{
		Country:      []string{"RU"},
		Organization: []string{"CA CGRates"},
		CommonName:   "CA",
	}

	subjectServer := subjectCA
	subjectServer.CommonName = "cgrates-engine"

	subjectClient := subjectCA
	subjectClient.CommonName = "cgrates-client"

	caCert, caPrivKey, caCertBytes, err := makeCA(subjectCA, now, now.AddDate(10, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to create CA cert: %w", err)
	}

	serverCertPEM, serverKeyPEM, err := makeCert(caCert, caPrivKey, subjectServer, now, now.AddDate(1, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to create certs bytes for server: %w", err)
	}

	clientCertPEM, clientKeyPEM, err := makeCert(caCert, caPrivKey, subjectClient, now, now.AddDate(1, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to create certs bytes for client: %w", err)
	}

	serverCert, err := tls.X509KeyPair(serverCertPEM, serverKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to create cert for server: %w", err)
	}

	caPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: caCertBytes})
	caCertPool := x509.NewCertPool()

	if ok := caCertPool.AppendCertsFromPEM(caPEM); !ok {
		return nil, errors.New("failed to append CA cert to pool") //nolint:err113
	}

	return &MTLSData{
		ServerTLSConfig: &tls.Config{
			ClientCAs:    caCertPool,
			Certificates: []tls.Certificate{serverCert},
			ClientAuth:   tls.RequireAndVerifyClientCert,
			MinVersion:   tls.VersionTLS12,
		},
		CABytes:         caPEM,
		ClientCertBytes: clientCertPEM,
		ClientKeyBytes:  clientKeyPEM,
	}, nil
}

func makeCA(subject pkix.Name, notBefore, notAfter time.Time) (*x509.Certificate, *rsa.PrivateKey, []byte, error) {
	caCert := &x509.Certificate{
		SerialNumber:          big.NewInt(2019),
		Subject:               subject,
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		IsCA:                  true,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		BasicConstraintsValid: true,
	}

	caPrivKey, err := rsa.GenerateKey(cryptorand.Reader, 2048)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to generate CA private key: %w", err)
	}

	caCertBytes, err := x509.CreateCertificate(cryptorand.Reader, caCert, caCert, &caPrivKey.PublicKey, caPrivKey)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create CA certificate: %w", err)
	}

	return caCert, caPrivKey, caCertBytes, nil
}

// makeCert возвращает certPEM, keyPEM для localhost / 127.0.0.1.
func makeCert(
	caCert *x509.Certificate,
	caKey *rsa.PrivateKey,
	subject pkix.Name,
	notBefore,
	notAfter time.Time,
) ([]byte, []byte, error) {
	serial, err := cryptorand.Int(cryptorand.Reader, big.NewInt(1<<62))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate serial: %w", err)
	}

	cert := &x509.Certificate{
		SerialNumber: serial,
		Subject:      subject,
		IPAddresses:  []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		DNSNames:     []string{"localhost"},
		NotBefore:    notBefore,
		NotAfter:     notAfter,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth, x509.ExtKeyUsageServerAuth},
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}

	certKey, err := rsa.GenerateKey(cryptorand.Reader, 2048)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate key: %w", err)
	}

	certBytes, err := x509.CreateCertificate(cryptorand.Reader, cert, caCert, &certKey.PublicKey, caKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create certificate: %w", err)
	}

	certPEM := new(bytes.Buffer)
	if err = pem.Encode(certPEM, &pem.Block{Type: "CERTIFICATE", Bytes: certBytes}); err != nil {
		return nil, nil, fmt.Errorf("failed to encode certificate: %w", err)
	}

	keyPEM := new(bytes.Buffer)
	if err = pem.Encode(keyPEM, &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(certKey)}); err != nil {
		return nil, nil, fmt.Errorf("failed to encode private key: %w", err)
	}

	return certPEM.Bytes(), keyPEM.Bytes(), nil
}
