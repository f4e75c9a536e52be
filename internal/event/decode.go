package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownFrame is returned by Decode for frame names outside the
// recognized set. Callers treat it as non-fatal and drop the frame.
var ErrUnknownFrame = errors.New("event: unknown frame name")

// Decode parses a wire frame into a typed event, validating required fields.
// A nil or empty payload is accepted for frames that carry no data.
func Decode(name Name, payload []byte) (Event, error) {
	switch name {
	case NameConnected:
		return ConnectedEvent{}, nil

	case NameAgentStatus:
		var evt AgentStatusEvent
		if err := unmarshal(name, payload, &evt); err != nil {
			return nil, err
		}
		if evt.AgentID == "" {
			return nil, fmt.Errorf("event: %s: agentId is required", name)
		}
		if !evt.Status.Valid() {
			return nil, fmt.Errorf("event: %s: invalid status %q", name, evt.Status)
		}
		return evt, nil

	case NameAgentThinking:
		var evt AgentThinkingEvent
		if err := unmarshal(name, payload, &evt); err != nil {
			return nil, err
		}
		if evt.AgentID == "" {
			return nil, fmt.Errorf("event: %s: agentId is required", name)
		}
		if evt.Thought == "" {
			return nil, fmt.Errorf("event: %s: thought is required", name)
		}
		return evt, nil

	case NameWorkflowUpdate:
		var evt WorkflowUpdateEvent
		if err := unmarshal(name, payload, &evt); err != nil {
			return nil, err
		}
		return evt, nil

	case NameMessage:
		var evt MessageEvent
		if err := unmarshal(name, payload, &evt); err != nil {
			return nil, err
		}
		if evt.Content == "" {
			return nil, fmt.Errorf("event: %s: content is required", name)
		}
		return evt, nil

	case NameUIComponent:
		var evt UIComponentEvent
		if err := unmarshal(name, payload, &evt); err != nil {
			return nil, err
		}
		if evt.ComponentName == "" {
			return nil, fmt.Errorf("event: %s: componentName is required", name)
		}
		if evt.Props == nil {
			return nil, fmt.Errorf("event: %s: props is required", name)
		}
		return evt, nil

	case NameArtifact:
		var evt ArtifactEvent
		if err := unmarshal(name, payload, &evt); err != nil {
			return nil, err
		}
		if evt.Name == "" {
			return nil, fmt.Errorf("event: %s: name is required", name)
		}
		return evt, nil

	case NameMissionComplete:
		return MissionCompleteEvent{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFrame, name)
}

// unmarshal decodes a JSON payload, wrapping parse failures with the frame name.
func unmarshal(name Name, payload []byte, v any) error {
	if len(payload) == 0 {
		return fmt.Errorf("event: %s: empty payload", name)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("event: %s: parse payload: %w", name, err)
	}
	return nil
}
