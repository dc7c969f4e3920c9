// Package server exposes the interpreter as the gRPC service
// basic.v1.Interpreter. Messages are dynamic, built from the embedded
// interpreter.proto, so no generated code is needed.
package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/funvibe/basic/internal/backend"
	"github.com/funvibe/basic/internal/config"
	"github.com/funvibe/basic/internal/evaluator"
	"github.com/funvibe/basic/internal/history"
)

// HistorySource is the source name recorded for remote inputs.
const HistorySource = "grpc"

type Options struct {
	// Timeout bounds one Run; zero means config.DefaultServerTimeout.
	Timeout  time.Duration
	MaxDepth int
	// History, when set, records every Run.
	History *history.Store
	Logger  *slog.Logger
}

// RunResult mirrors basic.v1.RunResponse.
type RunResult struct {
	SessionID string
	Value     string
	ValueKind string
	Error     string
	Output    string
}

type session struct {
	mu   sync.Mutex
	root *evaluator.Context
}

type Server struct {
	opts Options
	svc  *desc.ServiceDescriptor

	mu       sync.Mutex
	sessions map[string]*session
}

func New(opts Options) (*Server, error) {
	svc, err := LoadService()
	if err != nil {
		return nil, err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultServerTimeout
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = evaluator.DefaultMaxDepth
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Server{opts: opts, svc: svc, sessions: make(map[string]*session)}, nil
}

// Sessions is the number of live sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// lookup returns the session for id, creating one when id is empty.
func (s *Server) lookup(id string) (*session, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = history.NewSessionID()
		sess := &session{root: evaluator.NewRootContext()}
		s.sessions[id] = sess
		return sess, id, nil
	}
	if !history.ValidSessionID(id) {
		return nil, "", status.Errorf(codes.InvalidArgument, "invalid session id %q", id)
	}
	sess, ok := s.sessions[id]
	if !ok {
		return nil, "", status.Errorf(codes.NotFound, "unknown session %s", id)
	}
	return sess, id, nil
}

// Run evaluates source in the given session. Language errors are reported
// in RunResult.Error; the returned error is reserved for unknown sessions
// and transport problems.
func (s *Server) Run(ctx context.Context, sessionID, sourceName, source string) (RunResult, error) {
	sess, id, err := s.lookup(sessionID)
	if err != nil {
		return RunResult{}, err
	}
	if sourceName == "" {
		sourceName = config.StdinSourceName
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	var out bytes.Buffer
	interp := &evaluator.Interpreter{
		Context:  runCtx,
		Out:      &out,
		In:       strings.NewReader(""),
		MaxDepth: s.opts.MaxDepth,
	}

	res := RunResult{SessionID: id}
	_, value, diag := backend.Run(sourceName, source, interp, sess.root)
	res.Output = out.String()
	if diag != nil {
		res.Error = diag.Render()
	} else {
		v := evaluator.ProgramValue(value)
		res.Value = v.Inspect()
		res.ValueKind = evaluator.TypeName(v)
	}

	if s.opts.History != nil {
		_, herr := s.opts.History.Record(ctx, history.Entry{
			Session: id,
			Source:  HistorySource,
			Input:   source,
			Result:  res.Value,
			Error:   res.Error,
		})
		if herr != nil {
			s.opts.Logger.Warn("history record failed", "session", id, "error", herr)
		}
	}
	return res, nil
}

// Reset drops a session. It reports whether the session existed.
func (s *Server) Reset(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return ok
}

// Register adds the Interpreter service to reg.
func (s *Server) Register(reg grpc.ServiceRegistrar) {
	sd := &grpc.ServiceDesc{
		ServiceName: ServiceName,
		HandlerType: (*interface{})(nil),
		Methods: []grpc.MethodDesc{
			{MethodName: MethodRun, Handler: s.unary(MethodRun, s.handleRun)},
			{MethodName: MethodReset, Handler: s.unary(MethodReset, s.handleReset)},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: protoFileName,
	}
	reg.RegisterService(sd, s)
}

type dynamicHandler func(ctx context.Context, req *dynamic.Message) (*dynamic.Message, error)

// unary adapts a handler on dynamic messages to grpc.MethodDesc.
func (s *Server) unary(method string, h dynamicHandler) grpc.MethodHandler {
	md := s.svc.FindMethodByName(method)
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := dynamic.NewMessage(md.GetInputType())
		if err := dec(in); err != nil {
			return nil, err
		}
		call := func(ctx context.Context, req interface{}) (interface{}, error) {
			return h(ctx, req.(*dynamic.Message))
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		return interceptor(ctx, in, info, call)
	}
}

func (s *Server) handleRun(ctx context.Context, req *dynamic.Message) (*dynamic.Message, error) {
	res, err := s.Run(ctx,
		stringField(req, "session_id"),
		stringField(req, "source_name"),
		stringField(req, "source"))
	if err != nil {
		return nil, err
	}

	out := dynamic.NewMessage(s.svc.FindMethodByName(MethodRun).GetOutputType())
	err = setFields(out, map[string]interface{}{
		"session_id": res.SessionID,
		"value":      res.Value,
		"value_kind": res.ValueKind,
		"error":      res.Error,
		"output":     res.Output,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "building response: %v", err)
	}
	return out, nil
}

func (s *Server) handleReset(ctx context.Context, req *dynamic.Message) (*dynamic.Message, error) {
	existed := s.Reset(stringField(req, "session_id"))
	out := dynamic.NewMessage(s.svc.FindMethodByName(MethodReset).GetOutputType())
	if err := setFields(out, map[string]interface{}{"existed": existed}); err != nil {
		return nil, status.Errorf(codes.Internal, "building response: %v", err)
	}
	return out, nil
}

// logUnary writes one line per request.
func (s *Server) logUnary(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)

	attrs := []any{"method", info.FullMethod, "duration", time.Since(start)}
	if msg, ok := req.(*dynamic.Message); ok {
		if id := stringField(msg, "session_id"); id != "" {
			attrs = append(attrs, "session", id)
		}
		if src := stringField(msg, "source_name"); src != "" {
			attrs = append(attrs, "source", src)
		}
	}
	if err != nil {
		s.opts.Logger.Error("request failed", append(attrs, "error", err)...)
	} else {
		s.opts.Logger.Info("request", attrs...)
	}
	return resp, err
}

// NewGRPCServer returns a grpc.Server with the service and request logging.
func (s *Server) NewGRPCServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.logUnary))
	gs := grpc.NewServer(opts...)
	s.Register(gs)
	return gs
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	gs := s.NewGRPCServer()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			gs.GracefulStop()
		case <-done:
		}
	}()

	s.opts.Logger.Info("serving", "addr", lis.Addr().String(), "service", ServiceName)
	err := gs.Serve(lis)
	if errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}
