package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerCategoriesResource(srv, svc)
	registerBoardResource(srv, svc)
	registerBlockTemplate(srv, svc)
}

func registerCategoriesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"snip://categories",
		"Categories",
		mcp.WithResourceDescription("Every category with its colour and block count."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		categories, err := svc.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"categories": categories,
			"count":      len(categories),
		})
	})
}

func registerBoardResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"snip://board",
		"Board",
		mcp.WithResourceDescription("Blocks grouped by category using the saved selection."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		groups, err := svc.Board(ctx, BoardQuery{})
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"groups": groups,
		})
	})
}

func registerBlockTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"snip://blocks/{id}",
		"Block",
		mcp.WithTemplateDescription("A single block with its category."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments, "id")
		if id == "" {
			return nil, fmt.Errorf("block id is required")
		}
		dto, err := svc.BlockByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

// templateArg reads a URI template variable. The server may hand back either a
// plain string or a single element slice.
func templateArg(args map[string]any, key string) string {
	switch v := args[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
