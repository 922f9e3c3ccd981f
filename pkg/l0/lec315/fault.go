package lec315

import (
	"os"
	"sync"
	"time"

	"github.com/golang/glog"
)

// FaultHandler is notified when an exchange fails on the transport.
// interval is the indicator blink period associated with the fault.
type FaultHandler interface {
	SignalFault(interval time.Duration, err error)
}

// FaultFunc is func type of FaultHandler.
type FaultFunc func(time.Duration, error)

// SignalFault implements FaultHandler.
func (f FaultFunc) SignalFault(interval time.Duration, err error) {
	f(interval, err)
}

// LogFault logs faults and lets the caller recover.
var LogFault = FaultFunc(func(interval time.Duration, err error) {
	glog.Errorf("compass fault: %v", err)
})

// HaltFault terminates the process on the first fault.
// Use it where an external supervisor is expected to restart the driver.
var HaltFault = FaultFunc(func(interval time.Duration, err error) {
	glog.Fatalf("compass fault, halting: %v", err)
})

// LEDFault blinks a sysfs LED (e.g. /sys/class/leds/led0/brightness)
// for Duration after a fault. Faults while blinking extend nothing.
type LEDFault struct {
	Path     string
	Duration time.Duration

	lock     sync.Mutex
	blinking bool
}

// DefaultBlinkDuration is used when LEDFault.Duration is not set.
const DefaultBlinkDuration = 5 * time.Second

// SignalFault implements FaultHandler.
func (l *LEDFault) SignalFault(interval time.Duration, err error) {
	glog.Errorf("compass fault: %v", err)
	l.lock.Lock()
	if l.blinking {
		l.lock.Unlock()
		return
	}
	l.blinking = true
	l.lock.Unlock()
	go l.blink(interval)
}

func (l *LEDFault) blink(interval time.Duration) {
	defer func() {
		l.lock.Lock()
		l.blinking = false
		l.lock.Unlock()
	}()
	dur := l.Duration
	if dur <= 0 {
		dur = DefaultBlinkDuration
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	deadline := time.After(dur)
	on := false
	for {
		select {
		case <-deadline:
			l.set(false)
			return
		case <-ticker.C:
			on = !on
			l.set(on)
		}
	}
}

func (l *LEDFault) set(on bool) {
	val := []byte("0")
	if on {
		val = []byte("1")
	}
	if err := os.WriteFile(l.Path, val, 0644); err != nil {
		glog.V(2).Infof("fault LED %s: %v", l.Path, err)
	}
}
