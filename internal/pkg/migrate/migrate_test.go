package migrate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrationsOrdered(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}
	assert.Equal(t, 1, migrations[0].Version)

	latest, err := Latest()
	require.NoError(t, err)
	assert.Equal(t, migrations[len(migrations)-1].Version, latest)
}

func TestInitialSchemaHasUniquenessRules(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)

	schema := migrations[0].UpSQL
	assert.True(t, strings.Contains(schema, "UNIQUE (employee_id, date)"))
	assert.True(t, strings.Contains(schema, "WHERE is_active"))
}
