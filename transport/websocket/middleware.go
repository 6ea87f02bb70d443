package websocket

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/undercover-backend/internal/apperror"
	"github.com/rocketscienceinc/undercover-backend/internal/event"
)

// withErrors dispatches what handler produced, or turns its error into an error event for the caller only.
// Errors outside the application taxonomy are logged and reported as a generic internal failure.
func (that *Server) withErrors(action string, handler handlerFunc) func(ctx context.Context, client *Client, payload json.RawMessage) {
	return func(ctx context.Context, client *Client, payload json.RawMessage) {
		log := that.logger.With("action", action, "conn_id", client.id)

		outbound, err := handler(ctx, client, payload)
		if err == nil {
			that.hub.Dispatch(outbound)
			return
		}

		appErr, ok := apperror.From(err)
		if ok {
			log.Info("action rejected", "error", err)
		} else {
			log.Error("action failed", "error", err)
		}

		that.hub.Dispatch([]event.Outbound{errorEvent(client, appErr)})
	}
}

func errorEvent(client *Client, appErr *apperror.Error) event.Outbound {
	return event.Outbound{
		Target: event.ToConn(client.id),
		Event: event.Error{
			ErrorName:  appErr.Name,
			Kind:       string(appErr.Kind),
			Message:    appErr.Message,
			StatusCode: appErr.StatusCode(),
		},
	}
}

func unknownAction(context.Context, *Client, json.RawMessage) ([]event.Outbound, error) {
	return nil, apperror.ErrUnknownAction
}

func decode(payload json.RawMessage, target any) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: payload is required", apperror.ErrInvalidPayload)
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	return nil
}
