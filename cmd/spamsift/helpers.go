package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/Veraticus/spamsift/internal/classifier"
	"github.com/Veraticus/spamsift/internal/common"
	"github.com/Veraticus/spamsift/internal/config"
	"github.com/Veraticus/spamsift/internal/model"
	"github.com/Veraticus/spamsift/internal/rules"
	"github.com/Veraticus/spamsift/internal/service"
	"github.com/Veraticus/spamsift/internal/statmodel"
	"github.com/Veraticus/spamsift/internal/storage"
)

// app bundles the components a command works with.
type app struct {
	settings   *config.Settings
	registry   *rules.Registry
	policy     *rules.Policy
	classifier *classifier.Classifier
	store      service.Storage
}

// Close releases the history database, if one was opened.
func (a *app) Close() {
	if a.store == nil {
		return
	}
	if err := a.store.Close(); err != nil {
		slog.Error("Failed to close database", "error", err)
	}
}

// record saves a verdict to history. Failures are logged, never returned:
// history must not change what the user sees.
func (a *app) record(ctx context.Context, message string, verdict *model.Verdict) string {
	if a.store == nil {
		return ""
	}
	record, err := a.store.SaveVerdict(ctx, message, verdict)
	if err != nil {
		slog.Warn("Failed to record verdict in history", "error", err)
		return ""
	}
	return record.ID
}

// groupOrder returns the configured group names in evaluation order.
func (a *app) groupOrder() []string {
	return a.registry.Names()
}

func loadSettings() (*config.Settings, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

// loadRules builds the registry and policy from the configured rules file,
// falling back to the built-in groups.
func loadRules(settings *config.Settings) (*rules.Registry, *rules.Policy, error) {
	rs := rules.DefaultRuleSet()
	if settings.RulesPath != "" {
		var err error
		rs, err = rules.LoadRuleSet(settings.RulesPath)
		if err != nil {
			return nil, nil, err
		}
		common.LogDebug("Loaded rule groups", common.Fields{"path": settings.RulesPath, "groups": len(rs.Groups)})
	}
	return rs.Build()
}

// buildClassifier wires the rules and the statistical model together. A model
// that fails to load is not fatal: rule verdicts still work and model-path
// classifications report the load error.
func buildClassifier(settings *config.Settings, registry *rules.Registry, policy *rules.Policy) *classifier.Classifier {
	opts := []classifier.Option{classifier.WithPolicy(policy)}

	vectorizer, linear, err := statmodel.NewLoader(settings.ModelPath, settings.VectorizerPath).Load()
	if err != nil {
		slog.Warn("Statistical model unavailable, only rule verdicts are possible",
			"model", settings.ModelPath,
			"vectorizer", settings.VectorizerPath,
			"error", err)
		opts = append(opts, classifier.WithModelError(err))
	} else {
		negative, positive := linear.Classes()
		common.LogDebug("Loaded statistical model", common.Fields{
			"features": linear.Dim(),
			"classes":  negative + "/" + positive,
		})
		opts = append(opts, classifier.WithModel(vectorizer, linear))
	}

	return classifier.New(registry, opts...)
}

// initStorage opens and migrates the history database.
func initStorage(ctx context.Context, dbPath string) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// appOptions selects which components newApp builds.
type appOptions struct {
	// requireHistory fails when history is disabled instead of running without it.
	requireHistory bool
	withModel      bool
	withHistory    bool
}

func newApp(ctx context.Context, opts appOptions) (*app, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	registry, policy, err := loadRules(settings)
	if err != nil {
		return nil, err
	}

	a := &app{
		settings: settings,
		registry: registry,
		policy:   policy,
	}

	if opts.withModel {
		a.classifier = buildClassifier(settings, registry, policy)
	}

	if opts.requireHistory && !settings.HistoryEnabled {
		return nil, fmt.Errorf("history is disabled (history.enabled=false or --no-history)")
	}

	if opts.withHistory && settings.HistoryEnabled {
		store, err := initStorage(ctx, settings.DatabasePath)
		if err != nil {
			if opts.requireHistory {
				return nil, err
			}
			slog.Warn("History unavailable, verdicts will not be recorded", "error", err)
		} else {
			a.store = store
		}
	}

	return a, nil
}
