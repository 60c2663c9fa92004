package rtk

import "time"

// fakeChannel is a scriptable SerialChannel. failOpens Open calls leave the
// channel closed before it finally opens; failOpens < 0 means it never
// opens.
type fakeChannel struct {
	failOpens int
	opens     int
	opened    bool

	baud        uint
	baudSet     bool
	frameSet    bool
	flowSet     bool
	readTimeout time.Duration

	rx         []byte // bytes the device will produce
	tx         []byte // bytes written to the device
	writeShort bool   // report one byte fewer than requested
}

func (c *fakeChannel) Open() error {
	c.opens++
	if c.failOpens < 0 || c.opens <= c.failOpens {
		return nil // open() itself often fails silently; IsOpen is the truth
	}
	c.opened = true
	return nil
}

func (c *fakeChannel) IsOpen() bool { return c.opened }
func (c *fakeChannel) Close() error { c.opened = false; return nil }

func (c *fakeChannel) SetBaud(baud uint) error {
	c.baud = baud
	c.baudSet = true
	return nil
}

func (c *fakeChannel) SetFrame8N1() error        { c.frameSet = true; return nil }
func (c *fakeChannel) SetFlowControlNone() error { c.flowSet = true; return nil }

func (c *fakeChannel) SetReadTimeout(d time.Duration) error {
	c.readTimeout = d
	return nil
}

func (c *fakeChannel) Available() int     { return len(c.rx) }
func (c *fakeChannel) WaitReadable() bool { return len(c.rx) > 0 }

func (c *fakeChannel) Read(p []byte) (int, error) {
	n := copy(p, c.rx)
	c.rx = c.rx[n:]
	return n, nil
}

func (c *fakeChannel) Write(p []byte) (int, error) {
	c.tx = append(c.tx, p...)
	if c.writeShort {
		return len(p) - 1, nil
	}
	return len(p), nil
}

// scriptDriver returns canned values from Receive and records what it was
// asked to do. onReceive, when set, runs before each scripted return.
type scriptDriver struct {
	configureRet  int
	configures    int
	configureBaud uint
	configureMode OutputMode

	surveyAccuracy uint32
	surveyDuration uint32

	script    []int
	receives  int
	onReceive func(cycle int)
}

func (d *scriptDriver) Configure(baud uint, mode OutputMode) int {
	d.configures++
	d.configureBaud = baud
	d.configureMode = mode
	return d.configureRet
}

func (d *scriptDriver) SetSurveyInSpecs(accuracy, duration uint32) {
	d.surveyAccuracy = accuracy
	d.surveyDuration = duration
}

func (d *scriptDriver) Receive(timeoutMS int) int {
	cycle := d.receives
	d.receives++
	if d.onReceive != nil {
		d.onReceive(cycle)
	}
	if cycle < len(d.script) {
		return d.script[cycle]
	}
	return 0
}

// captureSinks records everything published.
type captureSinks struct {
	fixes       []NavFix
	corrections [][]byte
	satellites  []int
	surveys     []SurveyInStatus
}

func (s *captureSinks) PublishPosition(fix NavFix)      { s.fixes = append(s.fixes, fix) }
func (s *captureSinks) PublishCorrections(data []byte)  { s.corrections = append(s.corrections, data) }
func (s *captureSinks) PublishSatellites(count int)     { s.satellites = append(s.satellites, count) }
func (s *captureSinks) PublishSurvey(st SurveyInStatus) { s.surveys = append(s.surveys, st) }
