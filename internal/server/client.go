package server

import (
	"context"
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client calls a remote Interpreter service.
type Client struct {
	conn *grpc.ClientConn
	svc  *desc.ServiceDescriptor

	// SessionID is sent with every Run and updated from the responses.
	SessionID string
}

// Dial connects to target without transport security.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", target, err)
	}
	c, err := NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// NewClient wraps an existing connection.
func NewClient(conn *grpc.ClientConn) (*Client, error) {
	svc, err := LoadService()
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, svc: svc}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Run evaluates source in the client's session, starting one on first use.
func (c *Client) Run(ctx context.Context, sourceName, source string) (RunResult, error) {
	md := c.svc.FindMethodByName(MethodRun)
	req := dynamic.NewMessage(md.GetInputType())
	err := setFields(req, map[string]interface{}{
		"session_id":  c.SessionID,
		"source_name": sourceName,
		"source":      source,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to build request: %w", err)
	}

	resp := dynamic.NewMessage(md.GetOutputType())
	if err := c.conn.Invoke(ctx, FullMethod(MethodRun), req, resp); err != nil {
		return RunResult{}, fmt.Errorf("RPC failed: %w", err)
	}

	res := RunResult{
		SessionID: stringField(resp, "session_id"),
		Value:     stringField(resp, "value"),
		ValueKind: stringField(resp, "value_kind"),
		Error:     stringField(resp, "error"),
		Output:    stringField(resp, "output"),
	}
	c.SessionID = res.SessionID
	return res, nil
}

// Reset discards the client's session. The next Run starts a new one.
func (c *Client) Reset(ctx context.Context) (bool, error) {
	if c.SessionID == "" {
		return false, nil
	}
	md := c.svc.FindMethodByName(MethodReset)
	req := dynamic.NewMessage(md.GetInputType())
	if err := setFields(req, map[string]interface{}{"session_id": c.SessionID}); err != nil {
		return false, fmt.Errorf("failed to build request: %w", err)
	}

	resp := dynamic.NewMessage(md.GetOutputType())
	if err := c.conn.Invoke(ctx, FullMethod(MethodReset), req, resp); err != nil {
		return false, fmt.Errorf("RPC failed: %w", err)
	}
	c.SessionID = ""
	return boolField(resp, "existed"), nil
}
