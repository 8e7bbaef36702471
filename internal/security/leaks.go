// Package security scans diary changes for secrets before they leave the machine
package security

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zricethezav/gitleaks/v8/cmd/scm"
	"github.com/zricethezav/gitleaks/v8/detect"
	"github.com/zricethezav/gitleaks/v8/report"
	"github.com/zricethezav/gitleaks/v8/sources"
)

// LeakScanner provides secret detection capabilities. A detector keeps the
// findings of every scan it ran, so use one LeakScanner per scan.
type LeakScanner struct {
	detector *detect.Detector
}

// ScanResult contains the results of a leak scan
type ScanResult struct {
	Findings    []Finding
	HasLeaks    bool
	ScannedPath string
}

// Finding represents a detected secret
type Finding struct {
	RuleID      string
	Description string
	File        string
	Line        int
	Secret      string // Redacted
	Match       string
}

// NewLeakScanner creates a new leak scanner with default gitleaks rules
func NewLeakScanner() (*LeakScanner, error) {
	detector, err := detect.NewDetectorDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load gitleaks config: %w", err)
	}

	detector.Redact = 80

	return &LeakScanner{
		detector: detector,
	}, nil
}

// ScanPath scans the files under path for secrets
func (s *LeakScanner) ScanPath(ctx context.Context, path string) (*ScanResult, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	source := &sources.Files{
		Path:   absPath,
		Config: &s.detector.Config,
		Sema:   s.detector.Sema,
	}

	findings, err := s.detector.DetectSource(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	return s.buildResult(findings, absPath), nil
}

// ScanStagedChanges scans only the staged diff of the repository at repoPath
func (s *LeakScanner) ScanStagedChanges(ctx context.Context, repoPath string) (*ScanResult, error) {
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	gitCmd, err := sources.NewGitDiffCmdContext(ctx, absPath, true)
	if err != nil {
		return s.ScanPath(ctx, repoPath)
	}

	// The detector dereferences Remote when it links a finding, so it must
	// be set even though diary remotes are never linked.
	source := &sources.Git{
		Cmd:    gitCmd,
		Config: &s.detector.Config,
		Remote: sources.NewRemoteInfoContext(ctx, scm.NoPlatform, absPath),
		Sema:   s.detector.Sema,
	}

	findings, err := s.detector.DetectSource(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("staged scan failed: %w", err)
	}

	return s.buildResult(findings, absPath), nil
}

// LoadGitleaksIgnore loads ignore patterns from .gitleaksignore
func (s *LeakScanner) LoadGitleaksIgnore(repoPath string) error {
	ignorePath := filepath.Join(repoPath, ".gitleaksignore")
	if _, err := os.Stat(ignorePath); err == nil {
		return s.detector.AddGitleaksIgnore(ignorePath)
	}

	return nil
}

func (s *LeakScanner) buildResult(findings []report.Finding, path string) *ScanResult {
	result := &ScanResult{
		ScannedPath: path,
		HasLeaks:    len(findings) > 0,
		Findings:    make([]Finding, 0, len(findings)),
	}

	for _, f := range findings {
		result.Findings = append(result.Findings, Finding{
			RuleID:      f.RuleID,
			Description: f.Description,
			File:        f.File,
			Line:        f.StartLine,
			Secret:      f.Secret,
			Match:       f.Match,
		})
	}

	return result
}

// StagedScanner adapts LeakScanner to one-shot use: every call builds a
// fresh detector and honours the repository's .gitleaksignore.
type StagedScanner struct{}

// ScanStagedChanges implements the publisher's scanner hook
func (StagedScanner) ScanStagedChanges(ctx context.Context, repoPath string) (*ScanResult, error) {
	scanner, err := NewLeakScanner()
	if err != nil {
		return nil, err
	}

	if err := scanner.LoadGitleaksIgnore(repoPath); err != nil {
		return nil, fmt.Errorf("failed to load .gitleaksignore: %w", err)
	}

	return scanner.ScanStagedChanges(ctx, repoPath)
}

// FormatFindings formats findings for display
func FormatFindings(findings []Finding) string {
	if len(findings) == 0 {
		return ""
	}

	var sb strings.Builder

	_, _ = fmt.Fprintf(&sb, "\nFound %d potential secret(s):\n\n", len(findings))

	for i, f := range findings {
		_, _ = fmt.Fprintf(&sb, "  %d. %s\n", i+1, f.Description)
		_, _ = fmt.Fprintf(&sb, "     Rule: %s\n", f.RuleID)
		_, _ = fmt.Fprintf(&sb, "     File: %s:%d\n", f.File, f.Line)
		_, _ = fmt.Fprintf(&sb, "     Secret: %s\n\n", f.Secret)
	}

	return sb.String()
}
