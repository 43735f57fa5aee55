// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/xvierd/podium/internal/countdown"
	"github.com/xvierd/podium/internal/domain"
	"github.com/xvierd/podium/internal/services"
)

// Server exposes the speech timer over MCP using mark3labs/mcp-go.
type Server struct {
	server     *server.MCPServer
	controller *countdown.Controller
	practice   *services.PracticeService
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewServer creates a new MCP server instance driving the given
// controller. practice may be nil when no storage is available; the
// history tools then report an error result.
func NewServer(controller *countdown.Controller, practice *services.PracticeService) *Server {
	s := &Server{
		controller: controller,
		practice:   practice,
	}

	s.server = server.NewMCPServer(
		"podium-speech-timer",
		"1.0.0",
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_timer_state",
			mcp.WithDescription("Get the current speech timer state: clock, urgency color, progress and any active alert"),
		),
		s.handleGetTimerState,
	)

	startTool := mcp.NewTool(
		"start_timer",
		mcp.WithDescription("Start the speech countdown. Optionally reconfigure the speech type or duration first (only possible while idle)"),
		mcp.WithString(
			"speech_type",
			mcp.Description("Speech type: prepared, impromptu, evaluative"),
			mcp.Enum("prepared", "impromptu", "evaluative"),
		),
		mcp.WithNumber(
			"duration_minutes",
			mcp.Description("Optional custom duration in minutes; thresholds are rescaled for custom durations"),
		),
		mcp.WithNumber(
			"duration_seconds",
			mcp.Description("Optional extra seconds on top of duration_minutes"),
		),
	)
	s.server.AddTool(startTool, s.handleStartTimer)

	s.server.AddTool(
		mcp.NewTool(
			"pause_timer",
			mcp.WithDescription("Pause the running countdown"),
		),
		s.handlePauseTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"resume_timer",
			mcp.WithDescription("Resume a paused countdown"),
		),
		s.handleResumeTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"reset_timer",
			mcp.WithDescription("Reset the countdown to the speech type's default duration; a running timer keeps running"),
		),
		s.handleResetTimer,
	)

	s.server.AddTool(
		mcp.NewTool(
			"stop_timer",
			mcp.WithDescription("Stop the countdown and return to the idle state"),
		),
		s.handleStopTimer,
	)

	historyTool := mcp.NewTool(
		"get_history",
		mcp.WithDescription("Get recorded practice runs from the last N days"),
		mcp.WithNumber(
			"days",
			mcp.Description("How many days back to look (default: 7)"),
		),
	)
	s.server.AddTool(historyTool, s.handleGetHistory)

	s.server.AddTool(
		mcp.NewTool(
			"get_practice_stats",
			mcp.WithDescription("Get aggregated practice statistics across all recorded runs"),
		),
		s.handleGetPracticeStats,
	)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// snapshotResult marshals the current timer snapshot as a tool result.
func (s *Server) snapshotResult() (*mcp.CallToolResult, error) {
	snap := s.controller.Snapshot()

	result := map[string]interface{}{
		"speech_type":       string(snap.SpeechType),
		"clock":             snap.Clock().String(),
		"running":           snap.Running,
		"paused":            snap.Paused,
		"idle":              snap.Idle(),
		"remaining_seconds": snap.Remaining,
		"total_seconds":     snap.Total,
		"progress":          snap.Progress,
		"color":             string(snap.Color),
		"hide_countdown":    snap.HideCountdown,
	}
	if snap.Alert != "" {
		result["alert"] = snap.Alert
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal timer state: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetTimerState handles the get_timer_state tool.
func (s *Server) handleGetTimerState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.snapshotResult()
}

// handleStartTimer handles the start_timer tool.
func (s *Server) handleStartTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if typeArg := request.GetString("speech_type", ""); typeArg != "" {
		speechType, err := domain.ParseSpeechType(typeArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		s.controller.SetSpeechType(speechType)
	}

	minutes := intArg(request, "duration_minutes")
	seconds := intArg(request, "duration_seconds")
	if minutes > 0 || seconds > 0 {
		s.controller.SetOverride(&domain.Clock{Minutes: minutes, Seconds: seconds})
	}

	s.controller.Start()
	return s.snapshotResult()
}

// handlePauseTimer handles the pause_timer tool.
func (s *Server) handlePauseTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.controller.Pause()
	return s.snapshotResult()
}

// handleResumeTimer handles the resume_timer tool.
func (s *Server) handleResumeTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.controller.Resume()
	return s.snapshotResult()
}

// handleResetTimer handles the reset_timer tool.
func (s *Server) handleResetTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.controller.Reset()
	return s.snapshotResult()
}

// handleStopTimer handles the stop_timer tool.
func (s *Server) handleStopTimer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.controller.Stop()

	if run, ok := s.controller.LastRun(); ok && s.practice != nil {
		if _, err := s.practice.RecordRun(ctx, "", run); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to record run: %v", err)), nil
		}
	}

	return s.snapshotResult()
}

// handleGetHistory handles the get_history tool.
func (s *Server) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.practice == nil {
		return mcp.NewToolResultError("no practice history available"), nil
	}

	days := intArg(request, "days")
	if days <= 0 {
		days = 7
	}

	records, err := s.practice.GetHistory(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	var recordList []map[string]interface{}
	for _, record := range records {
		recordList = append(recordList, map[string]interface{}{
			"id":              record.ID,
			"title":           record.Title,
			"speech_type":     string(record.Type),
			"planned":         record.Planned().String(),
			"elapsed":         record.Elapsed().String(),
			"completed":       record.Completed,
			"started_at":      record.StartedAt.Format("2006-01-02T15:04:05"),
			"finished_at":     record.FinishedAt.Format("2006-01-02T15:04:05"),
			"elapsed_seconds": record.ElapsedSeconds,
		})
	}

	result := map[string]interface{}{
		"days":        days,
		"runs":        recordList,
		"total_count": len(recordList),
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal history: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// handleGetPracticeStats handles the get_practice_stats tool.
func (s *Server) handleGetPracticeStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.practice == nil {
		return mcp.NewToolResultError("no practice history available"), nil
	}

	stats, err := s.practice.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	runsByType := make(map[string]int, len(stats.RunsByType))
	for speechType, count := range stats.RunsByType {
		runsByType[string(speechType)] = count
	}

	result := map[string]interface{}{
		"runs":           stats.Runs,
		"completed":      stats.Completed,
		"total_practice": stats.TotalPractice.String(),
		"runs_by_type":   runsByType,
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stats: %w", err)
	}

	return mcp.NewToolResultText(string(jsonData)), nil
}

// intArg extracts an integer argument that may arrive as a JSON number
// or a string.
func intArg(request mcp.CallToolRequest, key string) int {
	if f := request.GetFloat(key, 0); f > 0 {
		return int(f)
	}
	if raw := request.GetString(key, ""); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return 0
}
