package modelimport

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ml-registry/model-registry/pkg/registry/models"
	"github.com/ml-registry/model-registry/pkg/registry/repositories"
	"github.com/ml-registry/model-registry/pkg/registry/services"
	"github.com/ml-registry/model-registry/pkg/registry/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `name,description,framework,version,author,tags,metrics
churn,Predicts churn,sklearn,1.2.0,ana,tabular;prod,"{""accuracy"": 0.91}"
vision,,pytorch,,,,
churn,again,sklearn,,,,
bad.name,,sklearn,,,,
broken-metrics,,onnx,,,,"{not json"
unknown-fw,,keras,,,,
`

func newService(t *testing.T) *services.ModelService {
	t.Helper()
	return services.NewModelService(repositories.NewModelRepository(testutil.NewTestDB(t)), nil)
}

func TestImport(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	res, err := Import(ctx, strings.NewReader(sample), svc, Options{})
	require.NoError(t, err)
	assert.Equal(t, Result{Processed: 3, Inserted: 2, Duplicates: 1, ParseErrors: 3}, res)

	churn, err := svc.GetModelByName(ctx, "churn")
	require.NoError(t, err)
	require.NotNil(t, churn)
	assert.Equal(t, models.FrameworkSklearn, churn.Framework)
	assert.Equal(t, []string{"tabular", "prod"}, churn.TagList())
	assert.Equal(t, models.Metrics{"accuracy": 0.91}, churn.MetricsData())
	assert.Equal(t, "1.2.0", *churn.CurrentVersion)
	assert.Equal(t, "ana", *churn.Author)

	vision, err := svc.GetModelByName(ctx, "vision")
	require.NoError(t, err)
	require.NotNil(t, vision)
	assert.Nil(t, vision.Description)
	assert.Equal(t, models.DefaultVersion, *vision.CurrentVersion)

	// importing the same file again only finds duplicates
	res, err = Import(ctx, strings.NewReader(sample), svc, Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inserted)
	assert.Equal(t, 3, res.Duplicates)
}

func TestImport_DryRunWritesNothing(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	res, err := Import(ctx, strings.NewReader(sample), svc, Options{DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)

	got, err := svc.GetModelByName(ctx, "churn")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestImport_InvalidHeader(t *testing.T) {
	_, err := Import(context.Background(), strings.NewReader("title,kind\nx,y\n"), newService(t), Options{})
	assert.ErrorContains(t, err, "missing columns: name, framework")
}

func TestImportCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,framework\nfrom-file,other\n"), 0o600))

	res, err := ImportCSV(context.Background(), newService(t), Options{CSVPath: path})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)

	_, err = ImportCSV(context.Background(), newService(t), Options{CSVPath: filepath.Join(t.TempDir(), "missing.csv")})
	assert.Error(t, err)

	_, err = ImportCSV(context.Background(), newService(t), Options{})
	assert.Error(t, err)
}
