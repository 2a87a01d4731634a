package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/segmentio/encoding/json"

	"github.com/Easy-Infra-Ltd/easy-phishcheck/src/matcher"
)

const (
	toolCheckMessage    = "check_message"
	toolReloadBlacklist = "reload_blacklist"

	// verdictLogger names the MCP log stream verdicts are pushed on.
	verdictLogger = "phishcheck"
)

// Tool callers only ever see these. The load error itself can quote file
// content and stays in the server log.
var (
	errPathNotAllowed = errors.New("blacklist path must be inside the configured blacklist directory")
	errReloadFailed   = errors.New("blacklist could not be read or parsed, previous blacklist kept")
)

type checkInput struct {
	Message string `json:"message" jsonschema:"the message text to scan for links"`
}

type reloadInput struct {
	Path string `json:"path,omitempty" jsonschema:"blacklist file to load instead of the configured one, relative to or inside the configured blacklist directory"`
}

type reloadOutput struct {
	Domains int    `json:"domains" jsonschema:"number of distinct domains now installed"`
	ID      string `json:"id" jsonschema:"identifier of the installed blacklist"`
	Source  string `json:"source" jsonschema:"file the blacklist was read from"`
}

func (s *Service) registerTools() {
	mcp.AddTool(s.upstream.Server, &mcp.Tool{
		Name: toolCheckMessage,
		Description: "Scan a message for http(s) links and report the first one containing a blacklisted " +
			"phishing domain. The verdict is also sent as a log notification before the call returns.",
	}, s.checkMessage)

	mcp.AddTool(s.upstream.Server, &mcp.Tool{
		Name:        toolReloadBlacklist,
		Description: "Reload the phishing domain blacklist. On failure the previous blacklist stays active.",
	}, s.reloadBlacklist)
}

func (s *Service) checkMessage(ctx context.Context, req *mcp.CallToolRequest, in checkInput) (*mcp.CallToolResult, matcher.Verdict, error) {
	buf := s.adapter.Check([]byte(in.Message), func(payload []byte) {
		notifyVerdict(ctx, req.Session, payload, s.logger)
	})
	defer s.adapter.Release(buf)

	var verdict matcher.Verdict
	if err := json.Unmarshal(buf.Bytes(), &verdict); err != nil {
		return nil, matcher.Verdict{}, fmt.Errorf("decoding verdict: %w", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: buf.String()}},
	}, verdict, nil
}

func (s *Service) reloadBlacklist(_ context.Context, _ *mcp.CallToolRequest, in reloadInput) (*mcp.CallToolResult, reloadOutput, error) {
	path, err := s.clientPath(in.Path)
	if err != nil {
		s.logger.Warn("rejected blacklist path", "path", in.Path, "err", err)
		return nil, reloadOutput{}, errPathNotAllowed
	}
	bl, err := s.Reload(path)
	if err != nil {
		return nil, reloadOutput{}, errReloadFailed
	}
	return nil, reloadOutput{
		Domains: bl.Len(),
		ID:      bl.ID.String(),
		Source:  bl.Source,
	}, nil
}

// clientPath resolves a path supplied over MCP. Empty means the configured
// file; anything else must resolve inside the configured file's directory.
// Relative paths are taken relative to that directory.
func (s *Service) clientPath(path string) (string, error) {
	if path == "" {
		return s.cfg.Blacklist.Path, nil
	}

	dir, err := filepath.Abs(filepath.Dir(s.cfg.Blacklist.Path))
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return "", err
	}
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%s is outside %s", path, dir)
	}
	return path, nil
}

// notifyVerdict pushes the verdict to the calling session as a log message.
// Sessions that never set a log level receive nothing.
func notifyVerdict(ctx context.Context, session *mcp.ServerSession, payload []byte, logger *slog.Logger) {
	if session == nil {
		return
	}
	err := session.Log(ctx, &mcp.LoggingMessageParams{
		Level:  "info",
		Logger: verdictLogger,
		Data:   string(payload),
	})
	if err != nil {
		logger.Debug("verdict notification failed", "err", err)
	}
}
