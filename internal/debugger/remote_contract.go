package debugger

// The core has no transport of its own — remote access is an adapter
// outside the core boundary, same as the CLI front end. These types are
// the wire shape such an adapter would serialize, grounded on
// runtime_ipc.go's request/response envelope shape. No network or RPC
// library is wired here: the specification scopes the remote protocol's
// transport out of the core, so only the contract types live in this
// package.

// RemoteRequest is one command sent to a remote debugger instance.
type RemoteRequest struct {
	Op   string `json:"op"`
	Addr uint32 `json:"addr,omitempty"`
	Data []byte `json:"data,omitempty"`
}

// RemoteResponse is the reply to a RemoteRequest.
type RemoteResponse struct {
	OK      bool       `json:"ok"`
	Error   string     `json:"error,omitempty"`
	Info    *TargetInfo `json:"info,omitempty"`
}
