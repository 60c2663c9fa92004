package serialport

import (
	"bytes"
	"testing"
)

// fakePort stands in for the opened go-serial port.
type fakePort struct {
	rx     []byte
	tx     []byte
	closed bool
}

func (f *fakePort) Read(p []byte) (int, error) {
	if len(f.rx) == 0 {
		return 0, nil // timeout-style empty read
	}
	n := copy(p, f.rx)
	f.rx = f.rx[n:]
	return n, nil
}

func (f *fakePort) Write(p []byte) (int, error) {
	f.tx = append(f.tx, p...)
	return len(p), nil
}

func (f *fakePort) Close() error {
	f.closed = true
	return nil
}

func TestNewDefaultsBaud(t *testing.T) {
	c := New("/dev/ttyACM0", 0)
	if c.opts.BaudRate != 9600 {
		t.Errorf("baud = %d, want factory default 9600", c.opts.BaudRate)
	}
	if c.opts.DataBits != 8 || c.opts.StopBits != 1 {
		t.Errorf("framing = %d-%d", c.opts.DataBits, c.opts.StopBits)
	}
}

func TestWaitReadablePeeksOneByte(t *testing.T) {
	c := New("/dev/ttyACM0", 9600)
	port := &fakePort{rx: []byte{0xb5, 0x62}}
	c.port = port

	if c.Available() != 0 {
		t.Errorf("Available() = %d before any read, want 0", c.Available())
	}
	if !c.WaitReadable() {
		t.Fatal("WaitReadable() = false with data pending")
	}
	if c.Available() != 1 {
		t.Errorf("Available() = %d after peek, want 1", c.Available())
	}

	// The peeked byte must come out first and exactly once.
	buf := make([]byte, 4)
	n, err := c.Read(buf)
	if err != nil || n != 1 || buf[0] != 0xb5 {
		t.Fatalf("first read = (%d, %v, %x)", n, err, buf[:n])
	}
	n, err = c.Read(buf)
	if err != nil || n != 1 || buf[0] != 0x62 {
		t.Fatalf("second read = (%d, %v, %x)", n, err, buf[:n])
	}
}

func TestWaitReadableTimeout(t *testing.T) {
	c := New("/dev/ttyACM0", 9600)
	c.port = &fakePort{}

	if c.WaitReadable() {
		t.Error("WaitReadable() = true on an idle line")
	}
	if c.Available() != 0 {
		t.Errorf("Available() = %d after timeout, want 0", c.Available())
	}
}

func TestWriteAndClosedStates(t *testing.T) {
	c := New("/dev/ttyACM0", 9600)

	if c.IsOpen() {
		t.Error("IsOpen() = true before Open")
	}
	if _, err := c.Write([]byte{1}); err == nil {
		t.Error("write on closed port did not error")
	}
	if _, err := c.Read(make([]byte, 1)); err == nil {
		t.Error("read on closed port did not error")
	}

	port := &fakePort{}
	c.port = port
	if !c.IsOpen() {
		t.Error("IsOpen() = false with a port attached")
	}

	data := []byte{0xb5, 0x62, 0x06}
	if n, err := c.Write(data); err != nil || n != len(data) {
		t.Fatalf("write = (%d, %v)", n, err)
	}
	if !bytes.Equal(port.tx, data) {
		t.Errorf("port received %x", port.tx)
	}

	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	if !port.closed || c.IsOpen() {
		t.Error("Close did not release the port")
	}
}

func TestOptionSettersOnClosedPort(t *testing.T) {
	c := New("/dev/ttyACM0", 9600)

	// A closed channel just records the new options for the next Open.
	if err := c.SetBaud(115200); err != nil {
		t.Fatal(err)
	}
	if c.opts.BaudRate != 115200 {
		t.Errorf("baud = %d, want 115200", c.opts.BaudRate)
	}
	if err := c.SetFrame8N1(); err != nil {
		t.Fatal(err)
	}
	if err := c.SetFlowControlNone(); err != nil {
		t.Fatal(err)
	}
}
