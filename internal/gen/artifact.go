package gen

import (
	"hrbridge/internal/diagnostic"
	"hrbridge/internal/transform"
)

// NodeKind names the runtime task type of a node.
type NodeKind string

const (
	NodeTrigger      NodeKind = "API_TRIGGER"
	NodeScript       NodeKind = "JAVASCRIPT"
	NodeFieldMapping NodeKind = "FIELD_MAPPING"
	NodeRESTCall     NodeKind = "REST_CALL"
	NodeSuccess      NodeKind = "SUCCESS"
	NodePublish      NodeKind = "PUBSUB_PUBLISH"
)

// DataType is the runtime type of a variable or config parameter.
type DataType string

const (
	TypeString  DataType = "STRING"
	TypeInt     DataType = "INT"
	TypeDouble  DataType = "DOUBLE"
	TypeBoolean DataType = "BOOLEAN"
	TypeJSON    DataType = "JSON_VALUE"
)

// Branch conditions on the REST call's response status.
const (
	ConditionSuccess = "$responseStatus$ >= 200 AND $responseStatus$ < 300"
	ConditionFailure = "$responseStatus$ < 200 OR $responseStatus$ >= 300"
)

// Names of the fixed parameters and variables.
const (
	ParamDestinationEndpoint = "destinationEndpoint"
	ParamCustomerEmail       = "customerEmail"
	ParamOutputPayload       = "outputPayload"
	VarRequestBody           = "requestBody"
	VarResponseStatus        = "responseStatus"
)

// Node is one task of the graph.
type Node struct {
	ID         string         `json:"id"`
	Kind       NodeKind       `json:"kind"`
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters,omitempty"`
	NextTasks  []NextTask     `json:"nextTasks,omitempty"`
}

// NextTask is an outgoing edge, optionally guarded by a condition.
type NextTask struct {
	ID        string `json:"id"`
	Condition string `json:"condition,omitempty"`
}

// Variable is an entry of the flat variable table.
type Variable struct {
	Key          string   `json:"key"`
	DataType     DataType `json:"dataType"`
	DefaultValue any      `json:"defaultValue,omitempty"`
}

// ConfigParameter carries a static input of the integration.
type ConfigParameter struct {
	Key      string   `json:"key"`
	DataType DataType `json:"dataType"`
	Value    any      `json:"value"`
}

// Snippet is the script of one transformed mapping.
type Snippet struct {
	TaskID     string             `json:"taskId"`
	Variable   string             `json:"variable"`
	SourcePath string             `json:"sourcePath"`
	TargetPath string             `json:"targetPath"`
	Kind       string             `json:"kind"`
	Code       string             `json:"code"`
	Preview    *transform.Preview `json:"preview,omitempty"`
}

// Artifact is the compiled integration.
type Artifact struct {
	Name             string                 `json:"name"`
	TriggerID        string                 `json:"triggerId"`
	Nodes            []Node                 `json:"nodes"`
	Variables        []Variable             `json:"variables"`
	ConfigParameters []ConfigParameter      `json:"configParameters"`
	Payload          map[string]any         `json:"payload"`
	Snippets         []Snippet              `json:"snippets,omitempty"`
	Diagnostics      diagnostic.Diagnostics `json:"diagnostics"`
}

// Node returns the node with the given id.
func (a *Artifact) Node(id string) (Node, bool) {
	for _, n := range a.Nodes {
		if n.ID == id {
			return n, true
		}
	}

	return Node{}, false
}

// Variable returns the variable with the given key.
func (a *Artifact) Variable(key string) (Variable, bool) {
	for _, v := range a.Variables {
		if v.Key == key {
			return v, true
		}
	}

	return Variable{}, false
}

// Param returns the config parameter with the given key.
func (a *Artifact) Param(key string) (ConfigParameter, bool) {
	for _, p := range a.ConfigParameters {
		if p.Key == key {
			return p, true
		}
	}

	return ConfigParameter{}, false
}
