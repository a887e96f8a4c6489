package flow

import "encoding/json"

// Methods understood by the plugin.
const (
	MethodQuery         = "query"
	MethodOpenWorkspace = "open_workspace"
	MethodOpenRemote    = "open_remote"
)

// Request is the JSON-RPC style call the launcher passes as the single
// process argument.
type Request struct {
	Method     string            `json:"method"`
	Parameters []json.RawMessage `json:"parameters"`
}

// Response is written to stdout in reply to a query.
type Response struct {
	Result []Result `json:"result"`
}

// Result is one item shown by the launcher.
type Result struct {
	Title         string  `json:"Title"`
	Subtitle      string  `json:"Subtitle"`
	JsonRPCAction *Action `json:"JsonRPCAction,omitempty"`
	IcoPath       string  `json:"IcoPath"`
}

// Action is the call the launcher makes back into the plugin when the user
// picks a Result.
type Action struct {
	Method              string   `json:"method"`
	Parameters          []string `json:"parameters"`
	DontHideAfterAction bool     `json:"dontHideAfterAction"`
}
