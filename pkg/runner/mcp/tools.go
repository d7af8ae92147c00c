package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/mindful/pkg/entry"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerCreateEntryTool(srv, svc)
	registerUpdateEntryTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerTogglePinTool(srv, svc)
	registerToggleLockTool(srv, svc)
	registerListEntriesTool(srv, svc)
	registerSearchEntriesTool(srv, svc)
	registerGetEntryTool(srv, svc)
	registerSummaryTool(srv, svc)
}

func moodEnum() []string {
	out := []string{"none"}
	for _, m := range entry.Moods() {
		out = append(out, string(m.Mood))
	}
	return out
}

func passwordParam() mcp.ToolOption {
	return mcp.WithString("password",
		mcp.Description("Locker password. Only needed for locked entries."),
	)
}

func registerCreateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_entry",
		mcp.WithDescription("Create a new journal entry."),
		mcp.WithString("title",
			mcp.Description("Entry title. Entries without one show as Untitled."),
		),
		mcp.WithString("content",
			mcp.Description("Entry body. May contain simple HTML markup."),
		),
		mcp.WithString("mood",
			mcp.Description("Optional mood which also picks the card color."),
			mcp.Enum(moodEnum()...),
		),
		mcp.WithString("custom_color",
			mcp.Description("Optional #rrggbb card color overriding the mood color."),
		),
		mcp.WithString("title_font",
			mcp.Description("Optional font name for the title."),
		),
		mcp.WithBoolean("pinned",
			mcp.Description("Pin the entry to the top of the list."),
		),
		mcp.WithBoolean("locked",
			mcp.Description("Move the entry into the locker."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title       string `json:"title"`
			Content     string `json:"content"`
			Mood        string `json:"mood"`
			CustomColor string `json:"custom_color"`
			TitleFont   string `json:"title_font"`
			Pinned      bool   `json:"pinned"`
			Locked      bool   `json:"locked"`
		}

		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(args.Title) == "" && strings.TrimSpace(args.Content) == "" {
			return mcp.NewToolResultError("title or content is required"), nil
		}

		dto, err := svc.CreateEntry(ctx, CreateEntryOptions{
			Title:       args.Title,
			Content:     args.Content,
			Mood:        args.Mood,
			CustomColor: args.CustomColor,
			TitleFont:   args.TitleFont,
			Pinned:      args.Pinned,
			Locked:      args.Locked,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return toJSONResult(dto)
	})
}

func registerUpdateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_entry",
		mcp.WithDescription("Change some fields of an entry. Omitted fields are kept."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to modify."),
		),
		mcp.WithString("title", mcp.Description("New title.")),
		mcp.WithString("content", mcp.Description("New body.")),
		mcp.WithString("mood",
			mcp.Description("New mood."),
			mcp.Enum(moodEnum()...),
		),
		mcp.WithString("custom_color", mcp.Description("New #rrggbb card color, empty to clear.")),
		mcp.WithString("title_font", mcp.Description("New title font.")),
		passwordParam(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID          string  `json:"id"`
			Password    string  `json:"password"`
			Title       *string `json:"title"`
			Content     *string `json:"content"`
			Mood        *string `json:"mood"`
			CustomColor *string `json:"custom_color"`
			TitleFont   *string `json:"title_font"`
		}

		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.UpdateEntry(ctx, UpdateEntryOptions{
			ID:          args.ID,
			Password:    args.Password,
			Title:       args.Title,
			Content:     args.Content,
			Mood:        args.Mood,
			CustomColor: args.CustomColor,
			TitleFont:   args.TitleFont,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete an entry permanently."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
		passwordParam(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if err := svc.DeleteEntry(ctx, id, request.GetString("password", "")); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"id":      id,
			"deleted": true,
		})
	})
}

func registerTogglePinTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_pin",
		mcp.WithDescription("Pin or unpin an entry."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to toggle."),
		),
		passwordParam(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.TogglePin(ctx, id, request.GetString("password", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerToggleLockTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_lock",
		mcp.WithDescription("Move an entry into or out of the locker."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to toggle."),
		),
		passwordParam(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.ToggleLock(ctx, id, request.GetString("password", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List entries pinned first, newest first."),
		mcp.WithString("view",
			mcp.Description("Which entries to list. locked and all need the password."),
			mcp.Enum("unlocked", "locked", "all"),
		),
		passwordParam(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		view := request.GetString("view", "unlocked")
		filter, err := ParseView(view)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		results, err := svc.ListEntries(ctx, filter, request.GetString("password", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"view":    filter.String(),
			"entries": results,
			"count":   len(results),
		})
	})
}

func registerSearchEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_entries",
		mcp.WithDescription("Search unlocked entries by substring match across titles and content."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Case-insensitive search text."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return (default 20)."),
			mcp.Min(1),
			mcp.Max(100),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := request.GetInt("limit", 20)

		results, err := svc.SearchEntries(ctx, query, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   query,
			"limit":   limit,
			"results": results,
			"count":   len(results),
		})
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single entry by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to fetch."),
		),
		passwordParam(),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.EntryByID(ctx, id, request.GetString("password", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSummaryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"journal_summary",
		mcp.WithDescription("Writer name, background and entry statistics for the unlocked view."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary, err := svc.Summary(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(summary)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
