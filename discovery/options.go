package discovery

import (
	"net/http"
	"time"
)

type Discover struct {
	startPort uint16
	endPort   uint16
	host      string
	attempts  uint
	interval  time.Duration
	http      *http.Client
}

type option func(Discover) Discover

func NewWithOptions(opts ...option) *Discover {
	d := Discover{
		startPort: 9000,
		endPort:   9010,
		host:      "localhost",
		attempts:  1,
		interval:  time.Second,
		http:      defaultHTTPClient(),
	}
	for _, opt := range opts {
		d = opt(d)
	}
	return &d
}

func WithPortRange(startPort, endPort uint16) option {
	return func(d Discover) Discover {
		d.startPort = startPort
		d.endPort = endPort
		return d
	}
}

func WithPort(port uint16) option {
	return WithPortRange(port, port)
}

func WithAttempts(attempts uint) option {
	return func(d Discover) Discover {
		d.attempts = max(attempts, 1)
		return d
	}
}

func WithInterval(interval time.Duration) option {
	return func(d Discover) Discover {
		d.interval = interval
		return d
	}
}
