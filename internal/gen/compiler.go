package gen

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"hrbridge/internal/diagnostic"
	"hrbridge/internal/mapping"
	"hrbridge/internal/transform"
)

// Config holds compiler options.
type Config struct {
	// Name is the integration name used when a request has none.
	Name string `mapstructure:"name"`
	// TriggerID is the id of the API trigger node.
	TriggerID string `mapstructure:"trigger_id"`
	// DeadLetterTopic receives request bodies the destination rejected.
	DeadLetterTopic string `mapstructure:"dead_letter_topic"`
	// AllowTargetCollisions lets the last mapping for a target path win with
	// a warning instead of rejecting the request.
	AllowTargetCollisions bool `mapstructure:"allow_target_collisions"`
}

// DefaultConfig returns the default compiler configuration.
func DefaultConfig() Config {
	return Config{
		Name:            "hr-integration",
		TriggerID:       "api_trigger/hr-integration",
		DeadLetterTopic: "hr-integration-dlq",
	}
}

// Compiler turns integration requests into artifacts. It keeps no state
// between compiles and is safe for concurrent use.
type Compiler struct {
	cfg    Config
	engine *transform.Engine
	log    *zap.Logger
}

// NewCompiler creates a Compiler. A nil engine or logger gets the defaults.
func NewCompiler(cfg Config, engine *transform.Engine, log *zap.Logger) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}

	if engine == nil {
		engine = transform.NewEngine(log)
	}

	def := DefaultConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}

	if cfg.TriggerID == "" {
		cfg.TriggerID = def.TriggerID
	}

	if cfg.DeadLetterTopic == "" {
		cfg.DeadLetterTopic = def.DeadLetterTopic
	}

	return &Compiler{cfg: cfg, engine: engine, log: log}
}

// compilation is the state of one Compile call.
type compilation struct {
	*Compiler
	req      IntegrationRequest
	artifact *Artifact
	scripts  []Node
	taskID   int
}

// Compile validates req and builds its artifact. Only *ValidationError is
// returned for bad input.
func (c *Compiler) Compile(req IntegrationRequest) (*Artifact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	name := req.Name
	if name == "" {
		name = c.cfg.Name
	}

	run := &compilation{
		Compiler: c,
		req:      req,
		artifact: &Artifact{
			Name:      name,
			TriggerID: c.cfg.TriggerID,
			Payload:   map[string]any{},
		},
	}

	if err := run.checkCollisions(); err != nil {
		return nil, err
	}

	run.artifact.Variables = append(run.artifact.Variables, Variable{
		Key:      transform.SourceParam,
		DataType: TypeJSON,
	})

	for i, m := range req.Mappings {
		if err := run.add(i, m); err != nil {
			return nil, err
		}
	}

	if err := run.assemble(); err != nil {
		return nil, err
	}

	c.log.Info("integration compiled",
		zap.String("name", name),
		zap.Int("mappings", len(req.Mappings)),
		zap.Int("scripts", len(run.scripts)),
		zap.Int("warnings", len(run.artifact.Diagnostics.Warnings)))

	return run.artifact, nil
}

func (run *compilation) checkCollisions() error {
	seen := make(map[string]int, len(run.req.Mappings))

	for i, m := range run.req.Mappings {
		prev, dup := seen[m.TargetPath]
		seen[m.TargetPath] = i

		if !dup {
			continue
		}

		if !run.cfg.AllowTargetCollisions {
			return invalid(fmt.Sprintf("mappings[%d].targetPath", i),
				"%q is also written by mappings[%d]", m.TargetPath, prev)
		}

		run.artifact.Diagnostics.AddWarning(diagnostic.CodeTargetCollision,
			fmt.Sprintf("mappings[%d] overrides mappings[%d]", i, prev),
			m.SourceField.Path, m.TargetPath)
	}

	return nil
}

// add writes one mapping into the payload tree, emitting a script task when
// the mapping is transformed.
func (run *compilation) add(i int, m mapping.Mapping) error {
	target, _ := mapping.ParsePath(m.TargetPath)

	ref := "${source." + m.SourceField.Path + "}"
	if m.IsTransformed() {
		ref = "${" + run.script(m) + "}"
	}

	if err := target.Set(run.artifact.Payload, ref); err != nil {
		return invalid(fmt.Sprintf("mappings[%d].targetPath", i), "%v", err)
	}

	return nil
}

// script emits the task node, variable and snippet of a transformed mapping
// and returns the variable name.
func (run *compilation) script(m mapping.Mapping) string {
	run.taskID++
	id := strconv.Itoa(run.taskID)
	spec := *m.Transformation
	name := VariableName(m.SourceField, run.taskID)

	code, known := transform.Snippet(spec, m.SourceField.Path, name)
	if !known {
		run.artifact.Diagnostics.AddWarning(diagnostic.CodeUnknownTransformation,
			fmt.Sprintf("unsupported transformation %q, value is passed through", spec.Type),
			m.SourceField.Path, m.TargetPath)
	}

	sample, hasSample := mapping.Lookup(run.req.SourcePayload, m.SourceField.Path)

	var (
		value   any
		preview *transform.Preview
	)

	if hasSample && sample != nil {
		value = sample
		if known {
			value = run.engine.Apply(sample, spec)
		}

		p := transform.Preview{Input: transform.Stringify(sample), Output: transform.Stringify(value)}
		preview = &p
	} else {
		value = zeroValue(spec)
		run.artifact.Diagnostics.AddInfo(diagnostic.CodeMissingSample,
			"source payload has no sample for this field, using the zero value",
			m.SourceField.Path, m.TargetPath)
	}

	run.artifact.Variables = append(run.artifact.Variables, Variable{
		Key:          name,
		DataType:     dataTypeOf(value),
		DefaultValue: value,
	})

	run.artifact.Snippets = append(run.artifact.Snippets, Snippet{
		TaskID:     id,
		Variable:   name,
		SourcePath: m.SourceField.Path,
		TargetPath: m.TargetPath,
		Kind:       spec.Type,
		Code:       code,
		Preview:    preview,
	})

	run.scripts = append(run.scripts, Node{
		ID:   id,
		Kind: NodeScript,
		Name: "Transform " + m.SourceField.Path,
		Parameters: map[string]any{
			"script": code,
			"output": name,
		},
	})

	return name
}

// assemble wires the fixed topology around the script nodes and fills the
// config parameter table.
func (run *compilation) assemble() error {
	payload, err := json.Marshal(run.artifact.Payload)
	if err != nil {
		return fmt.Errorf("serializing payload: %w", err)
	}

	base := len(run.scripts)
	mapID := strconv.Itoa(base + 1)
	callID := strconv.Itoa(base + 2)
	successID := strconv.Itoa(base + 3)
	dlqID := strconv.Itoa(base + 4)

	trigger := Node{
		ID:         run.cfg.TriggerID,
		Kind:       NodeTrigger,
		Name:       "API trigger",
		Parameters: map[string]any{"input": transform.SourceParam},
	}

	for i := range run.scripts {
		trigger.NextTasks = append(trigger.NextTasks, NextTask{ID: run.scripts[i].ID})
		run.scripts[i].NextTasks = []NextTask{{ID: mapID}}
	}

	if len(run.scripts) == 0 {
		trigger.NextTasks = []NextTask{{ID: mapID}}
	}

	nodes := append([]Node{trigger}, run.scripts...)
	nodes = append(nodes,
		Node{
			ID:   mapID,
			Kind: NodeFieldMapping,
			Name: "Build request body",
			Parameters: map[string]any{
				"template": "${config." + ParamOutputPayload + "}",
				"output":   VarRequestBody,
			},
			NextTasks: []NextTask{{ID: callID}},
		},
		Node{
			ID:   callID,
			Kind: NodeRESTCall,
			Name: "Call destination",
			Parameters: map[string]any{
				"method":         "POST",
				"url":            "${config." + ParamDestinationEndpoint + "}",
				"body":           "${" + VarRequestBody + "}",
				"responseStatus": VarResponseStatus,
			},
			NextTasks: []NextTask{
				{ID: successID, Condition: ConditionSuccess},
				{ID: dlqID, Condition: ConditionFailure},
			},
		},
		Node{
			ID:   successID,
			Kind: NodeSuccess,
			Name: "Success",
		},
		Node{
			ID:   dlqID,
			Kind: NodePublish,
			Name: "Publish to dead-letter topic",
			Parameters: map[string]any{
				"topic":   run.cfg.DeadLetterTopic,
				"message": "${" + VarRequestBody + "}",
				"attributes": map[string]any{
					ParamCustomerEmail: "${config." + ParamCustomerEmail + "}",
				},
			},
		},
	)

	if _, err := ExecutionOrder(nodes); err != nil {
		return fmt.Errorf("assembling task graph: %w", err)
	}

	a := run.artifact
	a.Nodes = nodes
	a.Variables = append(a.Variables,
		Variable{Key: VarRequestBody, DataType: TypeJSON},
		Variable{Key: VarResponseStatus, DataType: TypeInt},
	)
	a.ConfigParameters = []ConfigParameter{
		{Key: ParamDestinationEndpoint, DataType: TypeString, Value: run.req.DestinationEndpoint},
		{Key: ParamCustomerEmail, DataType: TypeString, Value: run.req.CustomerEmail},
		{Key: ParamOutputPayload, DataType: TypeString, Value: string(payload)},
	}

	return nil
}
