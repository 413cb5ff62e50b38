// Package server implements the file-transfer RPC dispatcher (C6):
// a TCP accept loop, per-connection record-mark reader/writer, and the
// three procedure handlers bound to internal/selector and local file
// I/O. Grounded on the teacher's internal/protocol/portmap.Server
// shape (shutdown channel, sync.Once, WaitGroup) and its
// serveTCP/handleTCPConn/processRPCMessage split, adapted from a
// single-procedure portmap table to this protocol's three procedures.
package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/fltrhq/fltr/internal/logger"
	"github.com/fltrhq/fltr/internal/metrics"
	"github.com/fltrhq/fltr/internal/portmap"
	"github.com/fltrhq/fltr/internal/protocol/fltr"
	"github.com/fltrhq/fltr/internal/protocol/rpc"
)

// Config configures a Server's network behavior; see internal/config.ServerConfig
// for the on-disk/env-driven counterpart this is built from.
type Config struct {
	ListenAddr      string
	RegisterPortmap bool
	PortmapAddr     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

// Server owns the TCP listener and dispatches accepted connections.
type Server struct {
	cfg        Config
	dispatcher *Dispatcher
	listener   net.Listener

	shutdown     chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

// New builds a Server bound to cfg, with a fresh Dispatcher.
func New(cfg Config) *Server {
	return &Server{
		cfg:        cfg,
		dispatcher: NewDispatcher(),
		shutdown:   make(chan struct{}),
	}
}

// Serve opens the listener, optionally registers with the host
// portmapper, and blocks accepting connections until ctx is canceled or
// Stop is called.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.ListenAddr, err)
	}
	s.listener = ln
	logger.Info("fltr server listening", logger.Path(ln.Addr().String()))

	if s.cfg.RegisterPortmap {
		if err := s.registerPortmap(ctx, ln.Addr()); err != nil {
			logger.Warn("portmap registration failed", "error", err)
		} else {
			defer s.unregisterPortmap(context.Background())
		}
	}

	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-s.shutdown:
		}
	}()

	s.wg.Add(1)
	go s.acceptLoop()
	s.wg.Wait()
	return nil
}

func (s *Server) registerPortmap(ctx context.Context, addr net.Addr) error {
	tcpAddr, ok := addr.(*net.TCPAddr)
	if !ok {
		return fmt.Errorf("listener address is not TCP: %v", addr)
	}
	client := portmap.NewClient(s.cfg.PortmapAddr, 5*time.Second)
	if err := client.Set(ctx, fltr.FLTRProg, fltr.FLTRVers, portmap.IPProtoTCP, uint32(tcpAddr.Port)); err != nil {
		return err
	}
	logger.Info("registered with portmapper", "port", tcpAddr.Port)
	return nil
}

func (s *Server) unregisterPortmap(ctx context.Context) {
	client := portmap.NewClient(s.cfg.PortmapAddr, 5*time.Second)
	if err := client.Unset(ctx, fltr.FLTRProg, fltr.FLTRVers); err != nil {
		logger.Debug("portmap unregister failed", "error", err)
	}
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return
			default:
				logger.Debug("accept error", "error", err)
				return
			}
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConn(conn)
		}()
	}
}

// handleConn serves requests on one connection in order, per spec.md
// §5's ordering guarantee: replies are delivered in the order the
// requests on this connection were processed. The connection is closed
// on the first framing or protocol-level error; individual procedure
// failures are carried inside a normal reply instead.
func (s *Server) handleConn(conn net.Conn) {
	defer func() { _ = conn.Close() }()
	addr := conn.RemoteAddr().String()

	for {
		if s.cfg.ReadTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.cfg.ReadTimeout))
		}
		record, err := rpc.ReadRecord(conn)
		if err != nil {
			if err != io.EOF {
				logger.Debug("read record failed", logger.ClientAddr(addr), "error", err)
			}
			return
		}

		reply := s.processRecord(record, addr)
		if reply == nil {
			continue
		}

		if s.cfg.WriteTimeout > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(s.cfg.WriteTimeout))
		}
		if err := rpc.WriteRecord(conn, reply); err != nil {
			logger.Debug("write record failed", logger.ClientAddr(addr), "error", err)
			return
		}
	}
}

func (s *Server) processRecord(record []byte, addr string) []byte {
	call, err := rpc.ReadCallMessage(record)
	if err != nil {
		logger.Debug("malformed call", logger.ClientAddr(addr), "error", err)
		return nil
	}

	if call.Program != fltr.FLTRProg {
		return rpc.BuildAcceptErrorReply(call.XID, rpc.ProgUnavail)
	}
	if call.Version != fltr.FLTRVers {
		return rpc.BuildProgMismatchReply(call.XID, fltr.FLTRVers, fltr.FLTRVers)
	}

	name := fltr.ProcedureName(call.Procedure)
	if name == "" {
		return rpc.BuildAcceptErrorReply(call.XID, rpc.ProcUnavail)
	}

	start := time.Now()
	data, status := s.dispatchProcedure(call.Procedure, call.Args(record))
	metrics.RequestDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	metrics.RequestsTotal.WithLabelValues(name, status).Inc()
	logger.Debug("handled rpc", logger.ClientAddr(addr), logger.Procedure(name), logger.DurationMs(logger.Duration(start)))

	if data == nil {
		return rpc.BuildAcceptErrorReply(call.XID, rpc.GarbageArgs)
	}
	return rpc.BuildSuccessReply(call.XID, data)
}

// dispatchProcedure decodes the argument, runs the handler, and
// re-encodes the result. status is "ok"/"error" for the metrics label,
// derived from the wire-level ErrorInfo the procedure returns.
func (s *Server) dispatchProcedure(proc uint32, argBytes []byte) ([]byte, string) {
	reader := bytes.NewReader(argBytes)

	switch proc {
	case fltr.ProcUpload:
		args, err := fltr.DecodeUploadArgs(reader)
		if err != nil {
			return nil, "error"
		}
		result := s.dispatcher.Upload(args)
		if result.Num == 0 {
			metrics.TransferBytes.WithLabelValues("upload").Observe(float64(len(args.Content)))
		}
		data, err := fltr.EncodeUploadResult(result)
		if err != nil {
			return nil, "error"
		}
		return data, metrics.Status(result.Num)

	case fltr.ProcDownload:
		name, err := fltr.DecodeDownloadArgs(reader)
		if err != nil {
			return nil, "error"
		}
		result := s.dispatcher.Download(name)
		if result.Err.Num == 0 {
			metrics.TransferBytes.WithLabelValues("download").Observe(float64(len(result.File.Content)))
		}
		data, err := fltr.EncodeDownloadResult(result)
		if err != nil {
			return nil, "error"
		}
		return data, metrics.Status(result.Err.Num)

	case fltr.ProcPick:
		args, err := fltr.DecodePickArgs(reader)
		if err != nil {
			return nil, "error"
		}
		result := s.dispatcher.Pick(args)
		data, err := fltr.EncodePickResult(result)
		if err != nil {
			return nil, "error"
		}
		return data, metrics.Status(result.Err.Num)

	default:
		return nil, "error"
	}
}

// Stop gracefully shuts the server down: no in-flight connection is
// killed, but the listener stops accepting new ones.
func (s *Server) Stop() {
	s.shutdownOnce.Do(func() {
		close(s.shutdown)
		if s.listener != nil {
			_ = s.listener.Close()
		}
	})
}

// Addr returns the bound listener address, or "" if not yet listening.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
