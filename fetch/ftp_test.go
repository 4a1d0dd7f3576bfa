package fetch

import (
	"errors"
	"io"
	"strings"
	"testing"
)

type fakeResponse struct {
	io.Reader
	closed *int
}

func (r fakeResponse) Close() error {
	*r.closed++
	return nil
}

type fakeConn struct {
	body string

	addr   string
	user   string
	pass   string
	path   string
	logins int
	retrs  int
	closed int
	quits  int

	loginErr error
	retrErr  error
}

func (c *fakeConn) Login(user, password string) error {
	c.logins++
	c.user, c.pass = user, password
	return c.loginErr
}

func (c *fakeConn) Retr(path string) (io.ReadCloser, error) {
	c.retrs++
	c.path = path
	if c.retrErr != nil {
		return nil, c.retrErr
	}
	return fakeResponse{strings.NewReader(c.body), &c.closed}, nil
}

func (c *fakeConn) Quit() error {
	c.quits++
	return nil
}

func withFakeDial(t *testing.T, conn *fakeConn) {
	t.Helper()
	saved := dialFTP
	dialFTP = func(addr string) (ftpConn, error) {
		conn.addr = addr
		return conn, nil
	}
	t.Cleanup(func() {
		dialFTP = saved
	})
}

func TestResolveFTP(t *testing.T) {
	conn := fakeConn{
		body: "<xs:schema/>",
	}
	withFakeDial(t, &conn)

	src, err := Resolve("ftp://ftp.local.server/test_files/schema.xsd", "SCHEMA_FILE")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if src.Body != conn.body {
		t.Errorf("body mismatched! want %q, got %q", conn.body, src.Body)
	}
	if !src.Remote() {
		t.Errorf("ftp source not reported as remote")
	}
	if conn.addr != "ftp.local.server:21" {
		t.Errorf("addr mismatched! want ftp.local.server:21, got %s", conn.addr)
	}
	if conn.user != "anonymous" || conn.pass != "anonymous" {
		t.Errorf("login should be anonymous, got %s/%s", conn.user, conn.pass)
	}
	if conn.path != "/test_files/schema.xsd" {
		t.Errorf("path mismatched! want /test_files/schema.xsd, got %s", conn.path)
	}
	if conn.logins != 1 || conn.retrs != 1 || conn.closed != 1 || conn.quits != 1 {
		t.Errorf("login/retr/close/quit should each run once, got %d/%d/%d/%d",
			conn.logins, conn.retrs, conn.closed, conn.quits)
	}
}

func TestResolveFTPKeepsPort(t *testing.T) {
	conn := fakeConn{
		body: "<xs:schema/>",
	}
	withFakeDial(t, &conn)

	if _, err := Resolve("ftp://ftp.local.server:2121/schema.xsd", "SCHEMA_FILE"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if conn.addr != "ftp.local.server:2121" {
		t.Errorf("addr mismatched! want ftp.local.server:2121, got %s", conn.addr)
	}
}

func TestResolveFTPError(t *testing.T) {
	conn := fakeConn{
		retrErr: errors.New("550 Failed to open file."),
	}
	withFakeDial(t, &conn)

	arg := "ftp://ftp.local.server/missing.xsd"
	_, err := Resolve(arg, "SCHEMA_FILE")
	if err == nil {
		t.Fatal("expected an error when RETR fails")
	}
	want := "550 Failed to open file. (" + arg + ")\nMake sure the URL is correct."
	if err.Error() != want {
		t.Errorf("message mismatched! want %q, got %q", want, err.Error())
	}
	if conn.quits != 1 {
		t.Errorf("connection should still be closed once, got %d", conn.quits)
	}
}
