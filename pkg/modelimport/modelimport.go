package modelimport

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ml-registry/model-registry/pkg/registry/models"
	"github.com/ml-registry/model-registry/pkg/registry/services"
	"go.uber.org/zap"
)

// Columns lists the header a model CSV must carry, in any order.
var Columns = []string{"name", "description", "framework", "version", "author", "tags", "metrics"}

type Options struct {
	CSVPath string
	DryRun  bool
	Logger  *zap.Logger
}

type Result struct {
	Processed   int
	Inserted    int
	Duplicates  int
	ParseErrors int
}

// Registrar is the part of the model service the import needs.
type Registrar interface {
	GetModelByName(ctx context.Context, name string) (*models.Model, error)
	CreateModel(ctx context.Context, spec models.ModelSpec) (*models.Model, error)
}

var _ Registrar = (*services.ModelService)(nil)

// ImportCSV registers the models listed in the CSV file at opts.CSVPath.
func ImportCSV(ctx context.Context, svc Registrar, opts Options) (Result, error) {
	csvPath := strings.TrimSpace(opts.CSVPath)
	if csvPath == "" {
		return Result{}, errors.New("csv path is empty")
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open csv: %w", err)
	}
	defer file.Close()

	return Import(ctx, file, svc, opts)
}

// Import registers one model per CSV row. Rows failing validation are counted
// as parse errors; names that already exist are counted and skipped.
func Import(ctx context.Context, r io.Reader, svc Registrar, opts Options) (Result, error) {
	if svc == nil {
		return Result{}, errors.New("model service is nil")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	idx, err := mapHeaders(headers)
	if err != nil {
		return Result{}, fmt.Errorf("invalid csv header: %w", err)
	}

	validate := models.NewValidator()
	seen := map[string]bool{}
	result := Result{}
	line := 1

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			logger.Warn("read error", zap.Int("line", line), zap.Error(err))
			result.ParseErrors++
			continue
		}

		spec, err := parseRow(record, idx, validate)
		if err != nil {
			logger.Warn("invalid row", zap.Int("line", line), zap.Error(err))
			result.ParseErrors++
			continue
		}
		result.Processed++

		if seen[spec.Name] {
			result.Duplicates++
			logger.Info("duplicate name in file", zap.Int("line", line), zap.String("name", spec.Name))
			continue
		}
		seen[spec.Name] = true

		if opts.DryRun {
			existing, err := svc.GetModelByName(ctx, spec.Name)
			if err != nil {
				return result, fmt.Errorf("line %d: %w", line, err)
			}
			if existing != nil {
				result.Duplicates++
				continue
			}
			result.Inserted++
			continue
		}

		if _, err := svc.CreateModel(ctx, spec); err != nil {
			if errors.Is(err, services.ErrDuplicateName) {
				result.Duplicates++
				logger.Info("model already registered", zap.Int("line", line), zap.String("name", spec.Name))
				continue
			}
			return result, fmt.Errorf("line %d: %w", line, err)
		}
		result.Inserted++
	}

	logger.Info("import finished",
		zap.Bool("dry_run", opts.DryRun),
		zap.Int("processed", result.Processed),
		zap.Int("inserted", result.Inserted),
		zap.Int("duplicates", result.Duplicates),
		zap.Int("parse_errors", result.ParseErrors),
	)
	return result, nil
}

type headerIndex map[string]int

func mapHeaders(headers []string) (headerIndex, error) {
	idx := headerIndex{}
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))] = i
	}
	var missing []string
	for _, col := range []string{"name", "framework"} {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

func (h headerIndex) get(record []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseRow(record []string, idx headerIndex, validate *validator.Validate) (models.ModelSpec, error) {
	in := models.ModelCreate{
		Name:        idx.get(record, "name"),
		Description: optional(idx.get(record, "description")),
		Framework:   strings.ToLower(idx.get(record, "framework")),
		Version:     optional(idx.get(record, "version")),
		Author:      optional(idx.get(record, "author")),
	}

	if raw := idx.get(record, "tags"); raw != "" {
		for _, tag := range strings.Split(raw, ";") {
			if tag = strings.TrimSpace(tag); tag != "" {
				in.Tags = append(in.Tags, tag)
			}
		}
	}
	if raw := idx.get(record, "metrics"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Metrics); err != nil {
			return models.ModelSpec{}, fmt.Errorf("metrics: %w", err)
		}
	}

	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			return models.ModelSpec{}, errors.New(strings.Join(fields, "; "))
		}
		return models.ModelSpec{}, err
	}

	version := models.DefaultVersion
	if in.Version != nil {
		version = *in.Version
	}
	return models.ModelSpec{
		Name:        models.NormalizeModelName(in.Name),
		Description: in.Description,
		Framework:   models.Framework(in.Framework),
		Tags:        in.Tags,
		Version:     version,
		Metrics:     in.Metrics,
		Author:      in.Author,
	}, nil
}
