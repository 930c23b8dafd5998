package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"modelcatalog/internal/domain/catalog"
	"modelcatalog/internal/domain/filter"
	"modelcatalog/internal/domain/snapshot"
	"modelcatalog/internal/utils/platformerrors"
)

// Config assembles an Engine.
type Config struct {
	Sources []Source
	Filter  filter.Config
	Prefer  []catalog.ProviderID

	// FamilyRules overrides the default family-derivation rule set.
	FamilyRules []catalog.FamilyRule

	Logger zerolog.Logger
}

// Engine runs the build pipeline: Collect, Normalize, Validate, Enrich,
// CompileFilters, ApplyFilters, Index. Stages run in order and fail fast; a
// failed run produces no snapshot at all.
type Engine struct {
	sources    []Source
	filterCfg  filter.Config
	prefer     []catalog.ProviderID
	normalizer *catalog.Normalizer
	enricher   *catalog.Enricher
	log        zerolog.Logger
}

func New(cfg Config) (*Engine, error) {
	enricher, err := catalog.NewEnricher(cfg.FamilyRules)
	if err != nil {
		return nil, platformerrors.NewError(platformerrors.LayerEngine, platformerrors.ErrorTypeValidation,
			"invalid family rules", err)
	}
	for _, providerID := range cfg.Prefer {
		if !catalog.KnownProvider(providerID) {
			return nil, platformerrors.NewError(platformerrors.LayerEngine, platformerrors.ErrorTypeValidation,
				fmt.Sprintf("prefer references unknown provider %q", providerID), nil).WithContext("provider", string(providerID))
		}
	}
	return &Engine{
		sources:    cfg.Sources,
		filterCfg:  cfg.Filter,
		prefer:     cfg.Prefer,
		normalizer: catalog.NewNormalizer(),
		enricher:   enricher,
		log:        cfg.Logger,
	}, nil
}

// Build runs the full pipeline and returns a publish-ready snapshot. The
// caller decides when to publish it to a Store.
func (e *Engine) Build(ctx context.Context) (*snapshot.Snapshot, error) {
	rawProviders, rawModels, err := e.collect(ctx)
	if err != nil {
		return nil, err
	}
	e.log.Debug().Int("providers", len(rawProviders)).Int("models", len(rawModels)).Msg("collect complete")

	normProviders, normModels, err := e.normalize(rawProviders, rawModels)
	if err != nil {
		return nil, err
	}

	providers, baseModels, err := e.validateAndMaterialize(normProviders, normModels)
	if err != nil {
		return nil, err
	}

	for _, model := range baseModels {
		e.enricher.Enrich(model)
	}

	knownIDs := make([]catalog.ProviderID, 0, len(providers))
	for _, provider := range providers {
		knownIDs = append(knownIDs, provider.ID)
	}
	compiled, unknown, err := filter.Compile(e.filterCfg, knownIDs)
	if err != nil {
		return nil, stageError(err, platformerrors.StageCompileFilters)
	}
	if len(unknown) > 0 {
		e.log.Warn().Strs("providers", unknown).Msg("filter references providers not present in the catalog; keys dropped")
	}

	snap, err := snapshot.Build(providers, baseModels, compiled, e.prefer)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeFilterExhausted) {
			return nil, stageError(err, platformerrors.StageApplyFilters)
		}
		return nil, stageError(err, platformerrors.StageIndex)
	}

	e.log.Info().
		Str("build_id", snap.BuildID).
		Int("providers", len(snap.Providers)).
		Int("base_models", len(snap.BaseModels)).
		Int("visible_models", len(snap.Models)).
		Msg("snapshot built")
	return snap, nil
}

// collect merges the raw sets of every source. A later source overrides an
// earlier one record-for-record, and exclude directives from any source apply
// to the whole merged set.
func (e *Engine) collect(ctx context.Context) ([]map[string]any, []map[string]any, error) {
	providerByID := map[string]rawEntry{}
	modelByKey := map[string]rawEntry{}
	excludes := []Exclude{}
	order := 0

	for _, source := range e.sources {
		set, err := source.Load(ctx)
		if err != nil {
			return nil, nil, stageError(platformerrors.AsError(platformerrors.LayerEngine, err,
				fmt.Sprintf("source %q failed", source.Name())), platformerrors.StageCollect)
		}

		for _, raw := range set.Providers {
			id, ok := stringField(raw, "id")
			if !ok {
				return nil, nil, stageError(platformerrors.NewError(platformerrors.LayerEngine, platformerrors.ErrorTypeValidation,
					fmt.Sprintf("source %q supplied a provider record without an id", source.Name()), nil), platformerrors.StageCollect)
			}
			if existing, replaced := providerByID[id]; replaced {
				providerByID[id] = rawEntry{order: existing.order, raw: raw}
			} else {
				providerByID[id] = rawEntry{order: order, raw: raw}
				order++
			}
		}
		for _, raw := range set.Models {
			id, okID := stringField(raw, "id")
			providerID, okProvider := stringField(raw, "provider")
			if !okID || !okProvider {
				return nil, nil, stageError(platformerrors.NewError(platformerrors.LayerEngine, platformerrors.ErrorTypeValidation,
					fmt.Sprintf("source %q supplied a model record without id or provider", source.Name()), nil), platformerrors.StageCollect)
			}
			key := providerID + "/" + id
			if existing, replaced := modelByKey[key]; replaced {
				modelByKey[key] = rawEntry{order: existing.order, raw: raw}
			} else {
				modelByKey[key] = rawEntry{order: order, raw: raw}
				order++
			}
		}
		excludes = append(excludes, set.Exclude...)
	}

	for _, ex := range excludes {
		if ex.Provider == "" {
			return nil, nil, stageError(platformerrors.NewError(platformerrors.LayerEngine, platformerrors.ErrorTypeValidation,
				"exclude directive missing provider", nil).WithContext("model", ex.Model), platformerrors.StageCollect)
		}
		if ex.Model == "" {
			delete(providerByID, ex.Provider)
			for key := range modelByKey {
				if strings.HasPrefix(key, ex.Provider+"/") {
					delete(modelByKey, key)
				}
			}
			continue
		}
		delete(modelByKey, ex.Provider+"/"+ex.Model)
	}

	providers := orderedRaw(providerByID)
	models := orderedRaw(modelByKey)
	return providers, models, nil
}

func (e *Engine) normalize(rawProviders, rawModels []map[string]any) ([]catalog.NormalizedProvider, []catalog.NormalizedModel, error) {
	providers := make([]catalog.NormalizedProvider, 0, len(rawProviders))
	for _, raw := range rawProviders {
		normalized, err := e.normalizer.NormalizeProvider(raw)
		if err != nil {
			return nil, nil, stageError(err, platformerrors.StageNormalize)
		}
		providers = append(providers, normalized)
	}

	models := make([]catalog.NormalizedModel, 0, len(rawModels))
	for _, raw := range rawModels {
		normalized, err := e.normalizer.NormalizeModel(raw)
		if err != nil {
			return nil, nil, stageError(err, platformerrors.StageNormalize)
		}
		models = append(models, normalized)
	}
	return providers, models, nil
}

func (e *Engine) validateAndMaterialize(normProviders []catalog.NormalizedProvider, normModels []catalog.NormalizedModel) ([]*catalog.Provider, []*catalog.Model, error) {
	providers := make([]*catalog.Provider, 0, len(normProviders))
	providerSet := make(map[catalog.ProviderID]struct{}, len(normProviders))
	for _, normalized := range normProviders {
		provider, err := catalog.MaterializeProvider(normalized)
		if err != nil {
			return nil, nil, stageError(err, platformerrors.StageValidate)
		}
		providers = append(providers, provider)
		providerSet[provider.ID] = struct{}{}
	}

	models := make([]*catalog.Model, 0, len(normModels))
	for _, normalized := range normModels {
		if _, ok := providerSet[normalized.Provider]; !ok {
			return nil, nil, stageError(platformerrors.NewError(platformerrors.LayerEngine, platformerrors.ErrorTypeValidation,
				fmt.Sprintf("model %q belongs to provider %q which no source supplied", normalized.ID, normalized.Provider), nil).
				WithContext("model", normalized.ID).WithContext("provider", string(normalized.Provider)), platformerrors.StageValidate)
		}
		model, err := catalog.Materialize(normalized)
		if err != nil {
			return nil, nil, stageError(err, platformerrors.StageValidate)
		}
		models = append(models, model)
	}
	return providers, models, nil
}

func stageError(err error, stage platformerrors.Stage) error {
	wrapped := platformerrors.AsError(platformerrors.LayerEngine, err, "build failed")
	if wrapped.Stage == "" {
		wrapped.WithStage(stage)
	}
	return wrapped
}

func stringField(raw map[string]any, key string) (string, bool) {
	value, ok := raw[key]
	if !ok {
		return "", false
	}
	str, ok := value.(string)
	if !ok || strings.TrimSpace(str) == "" {
		return "", false
	}
	return strings.TrimSpace(str), true
}

type rawEntry struct {
	order int
	raw   map[string]any
}

func orderedRaw(entries map[string]rawEntry) []map[string]any {
	list := make([]rawEntry, 0, len(entries))
	for _, entry := range entries {
		list = append(list, entry)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].order < list[j].order })

	result := make([]map[string]any, len(list))
	for i, entry := range list {
		result[i] = entry.raw
	}
	return result
}
