package apiclient

import (
	"bytes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/pbkdf2"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	apitypes "github.com/Alia5/vtouch/apitypes"

	"golang.org/x/crypto/chacha20poly1305"
)

// Parameters of the VIIPER session handshake.
const (
	handshakeMagic   = "eVI1\x00"
	handshakeOK      = "OK\x00"
	nonceSize        = 32
	pbkdf2Iterations = 100000
	pbkdf2Salt       = "VIIPER-Key-v1"
	authContext      = "VIIPER-Auth-v1"
	sessionContext   = "VIIPER-Session-v1"
	maxFrameSize     = 2 * 1024 * 1024
)

var errUnauthorized = apitypes.ApiError{Status: 401, Title: "Unauthorized", Detail: "invalid password"}

// deriveKey stretches a password into the 32 byte pre-shared key.
func deriveKey(password string) ([]byte, error) {
	if password == "" {
		return nil, errors.New("password cannot be empty")
	}
	return pbkdf2.Key(sha256.New, password, []byte(pbkdf2Salt), pbkdf2Iterations, 32)
}

func sessionKey(key, serverNonce, clientNonce []byte) []byte {
	h := sha256.New()
	h.Write(key)
	h.Write(serverNonce)
	h.Write(clientNonce)
	h.Write([]byte(sessionContext))
	return h.Sum(nil)
}

// authenticate runs the client half of the handshake on conn and returns a
// connection encrypting everything that follows.
func authenticate(conn net.Conn, password string) (net.Conn, error) {
	key, err := deriveKey(password)
	if err != nil {
		return nil, err
	}

	clientNonce := make([]byte, nonceSize)
	if _, err := rand.Read(clientNonce); err != nil {
		return nil, fmt.Errorf("generate client nonce: %w", err)
	}
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(authContext))
	mac.Write(clientNonce)

	msg := append([]byte(handshakeMagic), clientNonce...)
	msg = append(msg, mac.Sum(nil)...)
	if _, err := conn.Write(msg); err != nil {
		return nil, fmt.Errorf("write handshake: %w", err)
	}

	// Read the reply straight from conn: anything past the nonce already
	// belongs to the encrypted stream.
	prefix := make([]byte, len(handshakeOK))
	if _, err := io.ReadFull(conn, prefix); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			// the server hangs up on a bad password
			return nil, errUnauthorized
		}
		return nil, fmt.Errorf("read handshake response: %w", err)
	}
	if string(prefix) != handshakeOK {
		rest, _ := io.ReadAll(conn)
		line := strings.TrimSuffix(string(append(prefix, rest...)), "\n")
		var apiErr apitypes.ApiError
		if err := json.Unmarshal([]byte(line), &apiErr); err == nil && (apiErr.Status != 0 || apiErr.Title != "") {
			return nil, &apiErr
		}
		return nil, fmt.Errorf("invalid handshake response from server: %s", line)
	}

	serverNonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(conn, serverNonce); err != nil {
		return nil, fmt.Errorf("read server nonce: %w", err)
	}
	return newSecureConn(conn, sessionKey(key, serverNonce, clientNonce))
}

// secureConn frames every write as len(4) | nonce(12) | ciphertext and
// decrypts incoming frames the same way.
type secureConn struct {
	net.Conn
	aead cipher.AEAD

	wmu     sync.Mutex
	sendCtr uint64

	pending bytes.Buffer
}

func newSecureConn(conn net.Conn, key []byte) (*secureConn, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	return &secureConn{Conn: conn, aead: aead}, nil
}

func (c *secureConn) Write(p []byte) (int, error) {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	nonce := make([]byte, c.aead.NonceSize())
	binary.BigEndian.PutUint64(nonce[4:], c.sendCtr)
	c.sendCtr++

	sealed := c.aead.Seal(nil, nonce, p, nil)
	frame := make([]byte, 4, 4+len(nonce)+len(sealed))
	binary.BigEndian.PutUint32(frame, uint32(len(nonce)+len(sealed)))
	frame = append(frame, nonce...)
	frame = append(frame, sealed...)
	if _, err := c.Conn.Write(frame); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *secureConn) Read(p []byte) (int, error) {
	if c.pending.Len() == 0 {
		var hdr [4]byte
		if _, err := io.ReadFull(c.Conn, hdr[:]); err != nil {
			return 0, err
		}
		n := binary.BigEndian.Uint32(hdr[:])
		ns := uint32(c.aead.NonceSize())
		if n > maxFrameSize || n < ns {
			return 0, io.ErrUnexpectedEOF
		}
		frame := make([]byte, n)
		if _, err := io.ReadFull(c.Conn, frame); err != nil {
			return 0, err
		}
		plain, err := c.aead.Open(nil, frame[:ns], frame[ns:], nil)
		if err != nil {
			return 0, err
		}
		c.pending.Write(plain)
	}
	return c.pending.Read(p)
}
