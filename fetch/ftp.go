package fetch

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/jlaffaye/ftp"
)

type ftpConn interface {
	Login(user, password string) error
	Retr(path string) (io.ReadCloser, error)
	Quit() error
}

// dialFTP is a variable so tests can substitute a fake server connection.
var dialFTP = func(addr string) (ftpConn, error) {
	conn, err := ftp.Dial(addr)
	if err != nil {
		return nil, err
	}
	return serverConn{conn}, nil
}

type serverConn struct {
	conn *ftp.ServerConn
}

func (s serverConn) Login(user, password string) error {
	return s.conn.Login(user, password)
}

func (s serverConn) Retr(path string) (io.ReadCloser, error) {
	return s.conn.Retr(path)
}

func (s serverConn) Quit() error {
	return s.conn.Quit()
}

func resolveFTP(arg string) (Source, error) {
	u, err := url.Parse(arg)
	if err != nil {
		return Source{}, ftpError(err, arg)
	}
	addr := u.Host
	if !strings.Contains(addr, ":") {
		addr += ":21"
	}
	conn, err := dialFTP(addr)
	if err != nil {
		return Source{}, ftpError(err, arg)
	}
	defer conn.Quit()

	if err := conn.Login("anonymous", "anonymous"); err != nil {
		return Source{}, ftpError(err, arg)
	}
	r, err := conn.Retr(u.Path)
	if err != nil {
		return Source{}, ftpError(err, arg)
	}
	body, err := io.ReadAll(r)
	if cerr := r.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Source{}, ftpError(err, arg)
	}
	src := Source{
		Arg:  arg,
		Kind: KindFTP,
		Body: string(body),
	}
	return src, nil
}

func ftpError(err error, arg string) error {
	return fmt.Errorf("%s (%s)\nMake sure the URL is correct.", err, arg)
}
