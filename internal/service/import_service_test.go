package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jlwbr/workplanner-sub000/internal/importer"
	"github.com/jlwbr/workplanner-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedFile = `
channels:
  - name: Kitchen
    templates:
      - name: Dishes
        priority: 1
        rule: today(/monday)
        shifts:
          morning: {max: 2}
        sub_tasks: [rinse, dry]
      - name: Deep clean
        rule: today(/weekend)
  - name: Bar
    templates:
      - name: Restock
        rule: today(X), X = X
`

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportService_ImportFile(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	rec := &recordingObserver{}
	svc := NewImportService(e.ruleServiceAt(wednesday), e.uow, rec)

	result, err := svc.ImportFile(ctx, writeSeed(t, seedFile))
	require.NoError(t, err)
	require.Len(t, result.Channels, 2)
	assert.Equal(t, 3, result.TemplateCount)
	assert.Equal(t, 2, result.SubTaskCount)
	assert.Equal(t, 2, rec.last(t).Fields["channels"])

	assert.Equal(t, 2, e.count(t, "channels"))
	assert.Equal(t, 3, e.count(t, "task_templates"))
	assert.Equal(t, 2, e.count(t, "sub_task_templates"))

	// The imported templates drive generation straight away.
	gen, err := e.planningService(nil).GeneratePlanning(ctx, monday)
	require.NoError(t, err)
	require.Len(t, gen.Channels, 2)
	assert.Equal(t, 1, gen.Channels[0].ItemCount)
	assert.Equal(t, 2, gen.Channels[0].SubTasks)
	assert.Equal(t, 1, gen.Channels[1].ItemCount)
}

func TestImportService_InvalidRuleRejectsWholeFile(t *testing.T) {
	e := newEnv(t)
	svc := NewImportService(e.ruleServiceAt(wednesday), e.uow)

	schema, err := importer.ParseImportSchema([]byte(`
channels:
  - name: Kitchen
    templates:
      - name: Good
        rule: today(/monday)
      - name: Bad
        rule: undefined_predicate(/x)
`))
	require.NoError(t, err)

	_, err = svc.ImportSchema(context.Background(), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channels[0].templates[1].rule")
	assert.Equal(t, 0, e.count(t, "channels"))
	assert.Equal(t, 0, e.count(t, "task_templates"))
}

func TestImportService_StructuralErrors(t *testing.T) {
	e := newEnv(t)
	svc := NewImportService(e.ruleServiceAt(wednesday), e.uow)

	_, err := svc.ImportSchema(context.Background(), &importer.ImportSchema{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed")
}

func TestImportService_RollbackOnWriteFailure(t *testing.T) {
	e := newEnv(t)
	// Exec #1 Kitchen, #2 Bar, #3 the first template.
	uow := &testutil.FailOnNthExecUoW{DB: e.db, FailOn: 3, Err: errors.New("disk full")}
	svc := NewImportService(e.ruleServiceAt(wednesday), uow)

	_, err := svc.ImportFile(context.Background(), writeSeed(t, seedFile))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 0, e.count(t, "channels"))
	assert.Equal(t, 0, e.count(t, "task_templates"))
}

func TestImportService_MissingFile(t *testing.T) {
	e := newEnv(t)
	svc := NewImportService(e.ruleServiceAt(wednesday), e.uow)
	_, err := svc.ImportFile(context.Background(), filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
