// Package discovery finds local nodes by probing a range of localhost ports
// for the node information served on their root path.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/luca-patrignani/iota-adventurer/config"
	"github.com/luca-patrignani/iota-adventurer/rpc"
)

var ErrNotFound = errors.New("no local node found")

type Entry struct {
	URL  string
	Info rpc.NodeInfo
}

func New(port uint16) *Discover {
	return NewWithPortRange(port, port, 1)
}

func NewWithPortRange(startPort, endPort uint16, attempts uint) *Discover {
	return NewWithOptions(
		WithPortRange(startPort, endPort),
		WithAttempts(attempts),
	)
}

func (d *Discover) url(port uint16) string {
	return fmt.Sprintf("http://%s:%d", d.host, port)
}

// port >= startPort ends the loop if port wraps past 65535.
func (d *Discover) search(ctx context.Context) []Entry {
	var found []Entry
	for port := d.startPort; port <= d.endPort && port >= d.startPort; port++ {
		url := d.url(port)
		info, err := rpc.NewClient(url, config.Contract{}, rpc.WithHTTPClient(d.http)).NodeInfo(ctx)
		if err != nil {
			continue
		}
		found = append(found, Entry{URL: url, Info: info})
	}
	return found
}

// Find scans the port range until at least one node answers or the attempts
// run out.
func (d *Discover) Find(ctx context.Context) ([]Entry, error) {
	for i := range d.attempts {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(d.interval):
			}
		}
		if found := d.search(ctx); len(found) > 0 {
			return found, nil
		}
	}
	return nil, ErrNotFound
}

// FindPackage returns the first node serving the given game package.
func (d *Discover) FindPackage(ctx context.Context, packageID string) (Entry, error) {
	found, err := d.Find(ctx)
	if err != nil {
		return Entry{}, err
	}
	for _, e := range found {
		if e.Info.PackageID == packageID {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: none of %d nodes serves package %s", ErrNotFound, len(found), packageID)
}

// Listen binds the first free port of the range.
func (d *Discover) Listen() (net.Listener, uint16, error) {
	var err error
	for port := d.startPort; port <= d.endPort && port >= d.startPort; port++ {
		var l net.Listener
		l, err = net.Listen("tcp", fmt.Sprintf("%s:%d", d.host, port))
		if err == nil {
			return l, port, nil
		}
	}
	return nil, 0, fmt.Errorf("no free port in %d-%d: %w", d.startPort, d.endPort, err)
}

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 500 * time.Millisecond}
}
