package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sebastiaoggj/Agro-sh-sub000/internal/domain/catalog"
)

func TestSearchKey(t *testing.T) {
	assert.Equal(t, "oleo mineral", catalog.SearchKey("  Óleo   Mineral "))
	assert.Equal(t, "glifosato 480", catalog.SearchKey("GLIFOSATO 480"))
	assert.Equal(t, catalog.SearchKey("Fungicida Azoxistrobina"), catalog.SearchKey("fungicida azoxistróbina"))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Óleo Mineral", catalog.DisplayName("óleo  mineral"))
}

func TestNormalizeCategory(t *testing.T) {
	c, ok := catalog.NormalizeCategory("herbicida")
	assert.True(t, ok)
	assert.Equal(t, "HERBICIDA", c)

	_, ok = catalog.NormalizeCategory("desconocida")
	assert.False(t, ok)
}
