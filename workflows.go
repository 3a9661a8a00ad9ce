package sandbank

import (
	"context"
	"fmt"
)

// CreateWorkflow starts a third-party integration workflow, such as Plaid
// Link token creation. The workflow's output fields (the link token)
// become available once it reaches "completed".
func (c *Client) CreateWorkflow(ctx context.Context, req PostWorkflow) (Workflow, error) {
	c.logger.Debug("creating workflow", "type", req.Type, "kind", req.Kind, "customer_guid", req.CustomerGUID)

	var workflow Workflow
	if err := c.api.Post(ctx, "/api/workflows", req, &workflow); err != nil {
		return Workflow{}, fmt.Errorf("failed to create workflow: %w", err)
	}

	c.logger.Info("created workflow", "workflow_guid", workflow.GUID, "state", workflow.State)
	return workflow, nil
}

// GetWorkflow fetches a workflow by GUID.
func (c *Client) GetWorkflow(ctx context.Context, guid string) (Workflow, error) {
	var workflow Workflow
	if err := c.api.Get(ctx, "/api/workflows/"+guid, &workflow); err != nil {
		return Workflow{}, err
	}
	return workflow, nil
}
