package clients

import (
	"context"

	ws "debtster-collections/internal/transport/websocket"
)

// WebSocketClient pushes export job events to subscribers of the job's id.
type WebSocketClient struct {
	hub *ws.Hub
}

func NewWebSocketClient(hub *ws.Hub) *WebSocketClient {
	return &WebSocketClient{
		hub: hub,
	}
}

func (c *WebSocketClient) NotifyExportProgress(
	ctx context.Context,
	exportID string,
	progress float64,
	stage string,
) error {
	if c.hub == nil {
		return nil
	}

	data := map[string]any{
		"id":       exportID,
		"progress": progress,
	}
	if stage != "" {
		data["stage"] = stage
	}

	c.hub.Broadcast(exportID, &ws.Message{
		Type:    "export_progress",
		Channel: "export_progress#" + exportID,
		Data:    data,
	})
	return nil
}

func (c *WebSocketClient) NotifyExportComplete(
	ctx context.Context,
	exportID string,
	url string,
	fileName string,
) error {
	if c.hub == nil {
		return nil
	}

	c.hub.Broadcast(exportID, &ws.Message{
		Type:    "export_complete",
		Channel: "export_complete#" + exportID,
		Data: map[string]any{
			"id":        exportID,
			"url":       url,
			"file_name": fileName,
		},
	})
	return nil
}

func (c *WebSocketClient) NotifyExportFailed(ctx context.Context, exportID string, errMsg string) error {
	if c.hub == nil {
		return nil
	}

	c.hub.Broadcast(exportID, &ws.Message{
		Type:    "export_failed",
		Channel: "export_failed#" + exportID,
		Data: map[string]any{
			"id":      exportID,
			"message": errMsg,
		},
	})
	return nil
}
