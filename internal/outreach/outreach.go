// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outreach orchestrates email generation: it validates the request,
// fetches news, assembles the prompt, issues the email and summary calls
// concurrently, and resolves which article the email cites. It also exposes
// refinement, a legacy/structured comparison and prompt introspection. The
// service holds no per-request state.
package outreach

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/ir-outreach/internal/citation"
	"github.com/pdiddy/ir-outreach/internal/email"
	"github.com/pdiddy/ir-outreach/internal/llm"
	"github.com/pdiddy/ir-outreach/internal/logger"
	"github.com/pdiddy/ir-outreach/internal/news"
	"github.com/pdiddy/ir-outreach/internal/prompt"
	"github.com/pdiddy/ir-outreach/internal/refine"
	"github.com/pdiddy/ir-outreach/internal/summary"
	"github.com/pdiddy/ir-outreach/pkg/types"
)

// NewsFetcher returns ranked articles about a company and never fails.
type NewsFetcher interface {
	Fetch(ctx context.Context, company string, preferred []string) []types.Article
}

// Defaults are applied to requests that leave a value unset.
type Defaults struct {
	FirmName         string
	Version          prompt.Version
	MaxTokens        int
	SummaryMaxTokens int
}

// DefaultsFrom derives Defaults from configuration.
func DefaultsFrom(cfg types.Config) Defaults {
	return Defaults{
		FirmName:         cfg.Outreach.DefaultFirm,
		Version:          prompt.ParseVersion(cfg.Outreach.PromptVersion),
		MaxTokens:        cfg.LLM.MaxTokens,
		SummaryMaxTokens: cfg.LLM.SummaryMaxTokens,
	}
}

// Service generates and refines outreach emails.
type Service struct {
	News     NewsFetcher
	LLM      llm.Client
	Logger   logrus.FieldLogger
	Defaults Defaults
}

// New returns a Service.
func New(fetcher NewsFetcher, client llm.Client, defaults Defaults, log logrus.FieldLogger) *Service {
	return &Service{News: fetcher, LLM: client, Defaults: defaults, Logger: logger.OrDiscard(log)}
}

// GenerateInput is a generate request. CompanyName, ContactName and
// SenderName are required; everything else has a default.
type GenerateInput struct {
	CompanyName       string   `json:"companyName" yaml:"companyName"`
	ContactName       string   `json:"contactName" yaml:"contactName"`
	SenderName        string   `json:"senderName" yaml:"senderName"`
	FirmName          string   `json:"firmName,omitempty" yaml:"firmName,omitempty"`
	PreferredSources  []string `json:"preferredSources,omitempty" yaml:"preferredSources,omitempty"`
	AdditionalContext string   `json:"additionalContext,omitempty" yaml:"additionalContext,omitempty"`
	Tone              string   `json:"tone,omitempty" yaml:"tone,omitempty"`
	ContactRole       string   `json:"contactRole,omitempty" yaml:"contactRole,omitempty"`
	Length            string   `json:"length,omitempty" yaml:"length,omitempty"`
	Relationship      string   `json:"relationship,omitempty" yaml:"relationship,omitempty"`
	Structure         string   `json:"structure,omitempty" yaml:"structure,omitempty"`
	PromptVersion     string   `json:"promptVersion,omitempty" yaml:"promptVersion,omitempty"`
}

// Validate checks the required fields.
func (in GenerateInput) Validate() error {
	required := []struct{ field, value string }{
		{"companyName", in.CompanyName},
		{"contactName", in.ContactName},
		{"senderName", in.SenderName},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &types.ValidationError{Field: r.field, Reason: "is required"}
		}
	}
	return nil
}

// Draft is one generated email with its citation and seed transcript.
type Draft struct {
	EmailText         string           `json:"emailText" yaml:"emailText"`
	Subject           string           `json:"subject" yaml:"subject"`
	Body              string           `json:"body" yaml:"body"`
	CitedArticleIndex *int             `json:"citedArticleIndex" yaml:"citedArticleIndex"`
	CitedArticle      *types.Article   `json:"citedArticle" yaml:"citedArticle"`
	Transcript        types.Transcript `json:"transcript" yaml:"transcript"`
	PromptVersion     prompt.Version   `json:"promptVersion" yaml:"promptVersion"`
}

// GenerateOutput is the result of Generate.
type GenerateOutput struct {
	Draft `yaml:",inline"`

	RequestID     string          `json:"requestId" yaml:"requestId"`
	CompanyName   string          `json:"companyName" yaml:"companyName"`
	NewsSummary   string          `json:"newsSummary" yaml:"newsSummary"`
	ArticlesFound int             `json:"articlesFound" yaml:"articlesFound"`
	Sources       []string        `json:"sources" yaml:"sources"`
	Articles      []types.Article `json:"articles" yaml:"articles"`
	Style         prompt.Style    `json:"style" yaml:"style"`
}

// plan is the validated, defaulted form of a GenerateInput.
type plan struct {
	requestID string
	input     GenerateInput
	style     prompt.Style
	version   prompt.Version
	log       logrus.FieldLogger
}

func (s *Service) plan(in GenerateInput) (plan, error) {
	if err := in.Validate(); err != nil {
		return plan{}, err
	}
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.ContactName = strings.TrimSpace(in.ContactName)
	in.SenderName = strings.TrimSpace(in.SenderName)
	in.FirmName = strings.TrimSpace(in.FirmName)
	if in.FirmName == "" {
		in.FirmName = s.Defaults.FirmName
	}

	version := s.Defaults.Version
	if strings.TrimSpace(in.PromptVersion) != "" {
		version = prompt.ParseVersion(in.PromptVersion)
	}
	if version == "" {
		version = prompt.DefaultVersion
	}

	id := uuid.NewString()
	return plan{
		requestID: id,
		input:     in,
		style:     prompt.ParseStyle(in.Tone, in.ContactRole, in.Length, in.Relationship, in.Structure),
		version:   version,
		log: logger.OrDiscard(s.Logger).WithFields(logrus.Fields{
			"request_id": id,
			"company":    in.CompanyName,
		}),
	}, nil
}

func (p plan) request(version prompt.Version, newsContext string) prompt.Request {
	return prompt.Request{
		CompanyName:       p.input.CompanyName,
		ContactName:       p.input.ContactName,
		SenderName:        p.input.SenderName,
		FirmName:          p.input.FirmName,
		NewsContext:       newsContext,
		AdditionalContext: p.input.AdditionalContext,
		Style:             p.style,
		Version:           version,
	}
}

// Generate produces an email and a news summary for in. The email and
// summary calls run concurrently and both must succeed. A missing required
// field yields *types.ValidationError before any external call; a failed
// call yields *types.GenerationError.
func (s *Service) Generate(ctx context.Context, in GenerateInput) (*GenerateOutput, error) {
	p, err := s.plan(in)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	p.log.WithField("prompt_version", p.version).Info("generating email")

	articles := s.News.Fetch(ctx, p.input.CompanyName, p.input.PreferredSources)
	newsContext := news.FormatForPrompt(articles)

	var (
		draft  *Draft
		digest string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := s.draft(gctx, p.request(p.version, newsContext), articles)
		if err != nil {
			return err
		}
		draft = d
		return nil
	})
	g.Go(func() error {
		gen := &summary.Generator{Client: s.LLM, MaxTokens: s.Defaults.SummaryMaxTokens}
		out, err := gen.Summarize(gctx, p.input.CompanyName, newsContext)
		if err != nil {
			return &types.GenerationError{Op: "summary", Err: err}
		}
		digest = out
		return nil
	})
	if err := g.Wait(); err != nil {
		p.log.WithError(err).Error("generation failed")
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"articles": len(articles),
		"cited":    draft.CitedArticle != nil,
		"elapsed":  time.Since(start).Round(time.Millisecond),
	}).Info("email generated")

	return &GenerateOutput{
		Draft:         *draft,
		RequestID:     p.requestID,
		CompanyName:   p.input.CompanyName,
		NewsSummary:   digest,
		ArticlesFound: len(articles),
		Sources:       types.Sources(articles),
		Articles:      articles,
		Style:         p.style,
	}, nil
}

// draft assembles, calls, parses and resolves one email.
func (s *Service) draft(ctx context.Context, req prompt.Request, articles []types.Article) (*Draft, error) {
	text, err := prompt.Assemble(req)
	if err != nil {
		return nil, err
	}
	raw, err := s.LLM.Complete(ctx, llm.Prompt(text, s.Defaults.MaxTokens))
	if err != nil {
		return nil, &types.GenerationError{Op: "email", Err: err}
	}

	res := email.Parse(raw, req.Version)
	subject, body := email.Split(res.EmailText)
	return &Draft{
		EmailText:         res.EmailText,
		Subject:           subject,
		Body:              body,
		CitedArticleIndex: res.CitedArticleIndex,
		CitedArticle:      citation.Resolve(res.CitedArticleIndex, articles, res.EmailText),
		Transcript:        types.NewTranscript(text, res.EmailText),
		PromptVersion:     req.Version,
	}, nil
}

// RefineInput is a refine request. CurrentDraft is the draft as the user
// sees it now, possibly edited by hand.
type RefineInput struct {
	Transcript   types.Transcript `json:"transcript" yaml:"transcript"`
	Instruction  string           `json:"instruction" yaml:"instruction"`
	CurrentDraft string           `json:"currentDraft,omitempty" yaml:"currentDraft,omitempty"`
}

// RefineOutput is the result of Refine.
type RefineOutput struct {
	EmailText         string           `json:"emailText" yaml:"emailText"`
	Subject           string           `json:"subject" yaml:"subject"`
	Body              string           `json:"body" yaml:"body"`
	UpdatedTranscript types.Transcript `json:"updatedTranscript" yaml:"updatedTranscript"`
}

// Refine applies an edit instruction to the transcript's last draft. On a
// generation failure the output still carries the reconciled transcript.
func (s *Service) Refine(ctx context.Context, in RefineInput) (*RefineOutput, error) {
	log := logger.OrDiscard(s.Logger).WithFields(logrus.Fields{
		"request_id": uuid.NewString(),
		"turns":      len(in.Transcript),
	})

	out, err := refine.Refine(ctx, s.LLM, in.Transcript, in.Instruction, in.CurrentDraft, s.Defaults.MaxTokens)
	if err != nil {
		if out.Transcript == nil {
			return nil, err
		}
		log.WithError(err).Error("refinement failed")
		return &RefineOutput{UpdatedTranscript: out.Transcript}, err
	}

	subject, body := email.Split(out.EmailText)
	log.WithField("turns_after", len(out.Transcript)).Info("email refined")
	return &RefineOutput{
		EmailText:         out.EmailText,
		Subject:           subject,
		Body:              body,
		UpdatedTranscript: out.Transcript,
	}, nil
}

// Comparison holds the same request rendered through both template families.
type Comparison struct {
	Structured    *Draft          `json:"v2Structured" yaml:"v2Structured"`
	Legacy        *Draft          `json:"v1Legacy" yaml:"v1Legacy"`
	ArticlesFound int             `json:"articlesFound" yaml:"articlesFound"`
	Articles      []types.Article `json:"articles" yaml:"articles"`
}

// Compare generates the structured and legacy emails concurrently over one
// news fetch. Either failure fails the comparison.
func (s *Service) Compare(ctx context.Context, in GenerateInput) (*Comparison, error) {
	p, err := s.plan(in)
	if err != nil {
		return nil, err
	}
	p.log.Info("comparing prompt versions")

	articles := s.News.Fetch(ctx, p.input.CompanyName, p.input.PreferredSources)
	newsContext := news.FormatForPrompt(articles)

	cmp := &Comparison{ArticlesFound: len(articles), Articles: articles}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := s.draft(gctx, p.request(prompt.VersionStructured, newsContext), articles)
		cmp.Structured = d
		return err
	})
	g.Go(func() error {
		d, err := s.draft(gctx, p.request(prompt.VersionLegacy, newsContext), articles)
		cmp.Legacy = d
		return err
	})
	if err := g.Wait(); err != nil {
		p.log.WithError(err).Error("comparison failed")
		return nil, err
	}
	return cmp, nil
}

// CitationRule is the exported form of one citation fallback pattern.
type CitationRule struct {
	Pattern   string `json:"pattern" yaml:"pattern"`
	Publisher string `json:"publisher" yaml:"publisher"`
}

// PromptInfo is the introspection export plus the citation rules.
type PromptInfo struct {
	prompt.Information `yaml:",inline"`

	CitationPatterns []CitationRule `json:"citationPatterns" yaml:"citationPatterns"`
	DefaultFirm      string         `json:"defaultFirm" yaml:"defaultFirm"`
}

// PromptInfo returns the active templates, modifier tables and citation
// rules. It has no side effects.
func (s *Service) PromptInfo() PromptInfo {
	var rules []CitationRule
	for _, p := range citation.Patterns() {
		rules = append(rules, CitationRule{Pattern: p.Regexp.String(), Publisher: p.Publisher})
	}
	return PromptInfo{
		Information:      prompt.Info(),
		CitationPatterns: rules,
		DefaultFirm:      s.Defaults.FirmName,
	}
}
