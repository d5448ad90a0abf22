package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/snip/pkg/classify"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListCategoriesTool(srv, svc)
	registerListBoardTool(srv, svc)
	registerGetBlockTool(srv, svc)
	registerCreateBlockTool(srv, svc)
	registerUpdateBlockTool(srv, svc)
	registerDeleteBlockTool(srv, svc)
	registerCreateCategoryTool(srv, svc)
	registerDeleteCategoryTool(srv, svc)
	registerClassifyTool(srv)
}

func registerListCategoriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_categories",
		mcp.WithDescription("List every category with its colour and block count."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		categories, err := svc.ListCategories(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"categories": categories,
			"count":      len(categories),
		})
	})
}

func registerListBoardTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_board",
		mcp.WithDescription("List blocks grouped by category, in board order."),
		mcp.WithString("categories",
			mcp.Description("Comma separated category names or ids. Defaults to the saved selection."),
		),
		mcp.WithString("query",
			mcp.Description("Keep blocks whose title or content contains this text."),
		),
		mcp.WithString("title",
			mcp.Description("Keep blocks whose title matches this glob."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		q := BoardQuery{
			Categories: splitList(request.GetString("categories", "")),
			Query:      request.GetString("query", ""),
			Title:      request.GetString("title", ""),
		}
		groups, err := svc.Board(ctx, q)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		total := 0
		for _, g := range groups {
			total += g.Count
		}
		return toJSONResult(map[string]any{
			"groups": groups,
			"count":  total,
		})
	})
}

func registerGetBlockTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_block",
		mcp.WithDescription("Fetch a single block by id."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Block identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.BlockByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCreateBlockTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_block",
		mcp.WithDescription("Create a block. Code content is fenced and tagged with a language unless raw is set."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Block title."),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Block body."),
		),
		mcp.WithString("category",
			mcp.Description("Category name or id. Empty leaves the block uncategorized."),
		),
		mcp.WithBoolean("raw",
			mcp.Description("Store content exactly as given."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args CreateBlockOptions
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, res, err := svc.CreateBlock(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"block":    dto,
			"kind":     res.Kind,
			"language": res.Language,
		})
	})
}

func registerUpdateBlockTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_block",
		mcp.WithDescription("Update a block. Omitted fields are left unchanged."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Block identifier."),
		),
		mcp.WithString("title",
			mcp.Description("New title."),
		),
		mcp.WithString("content",
			mcp.Description("New body."),
		),
		mcp.WithString("category",
			mcp.Description("New category name or id."),
		),
		mcp.WithBoolean("uncategorized",
			mcp.Description("Remove the block from its category."),
		),
		mcp.WithBoolean("format",
			mcp.Description("Run the new content through code detection."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args UpdateBlockOptions
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(args.ID) == "" {
			return mcp.NewToolResultError("id is required"), nil
		}
		dto, err := svc.UpdateBlock(ctx, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteBlockTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_block",
		mcp.WithDescription("Delete a block by id."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Block identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteBlock(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerCreateCategoryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_category",
		mcp.WithDescription("Create a category."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Category name."),
		),
		mcp.WithString("color",
			mcp.Description("Palette name or hex colour."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("name")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.CreateCategory(ctx, name, request.GetString("color", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteCategoryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_category",
		mcp.WithDescription("Delete a category. Fails while blocks still reference it."),
		mcp.WithString("category",
			mcp.Required(),
			mcp.Description("Category name or id."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("category")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.DeleteCategory(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": dto})
	})
}

func registerClassifyTool(srv *server.MCPServer) {
	tool := mcp.NewTool(
		"classify_content",
		mcp.WithDescription("Report how content would be stored without saving anything."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Text to classify."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		content, err := request.RequireString("content")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(classify.Classify(content))
	})
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
