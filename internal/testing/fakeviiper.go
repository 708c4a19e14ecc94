// Package testing provides an in-process stand-in for a VIIPER management
// server.
package testing

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	apitypes "github.com/Alia5/vtouch/apitypes"
)

// FakeServer answers the management requests vtouch issues and records
// what is written to device streams.
type FakeServer struct {
	Addr string
	// Streams receives the bytes of every closed device stream.
	Streams chan []byte

	ln net.Listener

	mu      sync.Mutex
	buses   map[uint32][]string
	nextDev int
}

// NewFakeServer starts a server on a loopback port; it stops with the test.
func NewFakeServer(t *testing.T) *FakeServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &FakeServer{
		Addr:    ln.Addr().String(),
		Streams: make(chan []byte, 8),
		ln:      ln,
		buses:   map[uint32][]string{},
	}
	go s.serve()
	t.Cleanup(func() { _ = ln.Close() })
	return s
}

// Buses returns the existing bus numbers in ascending order.
func (s *FakeServer) Buses() []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint32, 0, len(s.buses))
	for id := range s.buses {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Devices returns the device ids on a bus.
func (s *FakeServer) Devices(bus uint32) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.buses[bus])
}

func (s *FakeServer) serve() {
	for {
		c, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handleConn(c)
	}
}

func (s *FakeServer) handleConn(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)
	req, err := r.ReadString('\x00')
	if err != nil {
		return
	}
	path, payload, _ := strings.Cut(strings.TrimSuffix(req, "\x00"), " ")
	parts := strings.Split(path, "/")

	// bus/{id}/{dev} without a known verb is a device stream.
	if len(parts) == 3 && parts[0] == "bus" && parts[2] != "add" && parts[2] != "remove" && parts[2] != "list" {
		data, _ := io.ReadAll(r)
		s.Streams <- data
		return
	}

	res, err := s.handle(parts, payload)
	if err != nil {
		e := apitypes.ApiError{Status: 400, Title: "Bad Request", Detail: err.Error()}
		res = e
	}
	out, _ := json.Marshal(res)
	fmt.Fprintf(conn, "%s\n", out)
}

func (s *FakeServer) handle(parts []string, payload string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case len(parts) == 1 && parts[0] == "ping":
		return apitypes.PingResponse{Server: "VIIPER", Version: "test"}, nil
	case len(parts) == 2 && parts[1] == "list":
		res := apitypes.BusListResponse{Buses: []uint32{}}
		for id := range s.buses {
			res.Buses = append(res.Buses, id)
		}
		return res, nil
	case len(parts) == 2 && parts[1] == "create":
		id, err := parseBus(payload)
		if err != nil {
			return nil, err
		}
		if _, ok := s.buses[id]; ok {
			return nil, fmt.Errorf("bus %d exists", id)
		}
		s.buses[id] = nil
		return apitypes.BusCreateResponse{BusID: id}, nil
	case len(parts) == 2 && parts[1] == "remove":
		id, err := parseBus(payload)
		if err != nil {
			return nil, err
		}
		delete(s.buses, id)
		return apitypes.BusRemoveResponse{BusID: id}, nil
	case len(parts) == 3 && parts[2] == "add":
		id, err := s.bus(parts[1])
		if err != nil {
			return nil, err
		}
		var req apitypes.DeviceCreateRequest
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return nil, err
		}
		s.nextDev++
		dev := strconv.Itoa(s.nextDev)
		s.buses[id] = append(s.buses[id], dev)
		return apitypes.Device{BusID: id, DevId: dev, Vid: "0x045e", Pid: "0x028e", Type: req.Type}, nil
	case len(parts) == 3 && parts[2] == "remove":
		id, err := s.bus(parts[1])
		if err != nil {
			return nil, err
		}
		s.buses[id] = slices.DeleteFunc(s.buses[id], func(d string) bool { return d == payload })
		return apitypes.DeviceRemoveResponse{BusID: id, DevId: payload}, nil
	}
	return nil, fmt.Errorf("unknown path %q", strings.Join(parts, "/"))
}

func (s *FakeServer) bus(raw string) (uint32, error) {
	id, err := parseBus(raw)
	if err != nil {
		return 0, err
	}
	if _, ok := s.buses[id]; !ok {
		return 0, fmt.Errorf("bus %d not found", id)
	}
	return id, nil
}

func parseBus(raw string) (uint32, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid busId: %w", err)
	}
	return uint32(id), nil
}
