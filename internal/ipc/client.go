package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Submit admits a video URL for recipe creation.
func (c *Client) Submit(url string) (*SubmitResponse, error) {
	var resp SubmitResponse
	if err := c.client.Call("Ladle.Submit", SubmitRequest{URL: url}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Describe returns the full view of a single recipe.
func (c *Client) Describe(id int64) (*DescribeResponse, error) {
	var resp DescribeResponse
	if err := c.client.Call("Ladle.Describe", DescribeRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Progress returns a recipe's progress log.
func (c *Client) Progress(id int64) (*ProgressResponse, error) {
	var resp ProgressResponse
	if err := c.client.Call("Ladle.Progress", ProgressRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns recipe summaries optionally filtered by statuses.
func (c *Client) List(statuses []string) (*ListResponse, error) {
	var resp ListResponse
	if err := c.client.Call("Ladle.List", ListRequest{Statuses: statuses}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Ladle.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop requests the daemon to stop processing.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Ladle.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
