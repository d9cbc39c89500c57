package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wardrobeapp/wardrobe-server/internal/domain"
)

func mustSQL(t *testing.T, rule domain.CollectionRule) (string, []any) {
	t.Helper()
	frag := Compile(rule)
	require.NotNil(t, frag, "rule should compile: %+v", rule)
	sql, args, err := frag.ToSql()
	require.NoError(t, err)
	return sql, args
}

func TestCompile_Equals(t *testing.T) {
	sql, args := mustSQL(t, domain.CollectionRule{
		Field:    domain.FieldCategory,
		Operator: domain.OpEquals,
		Value:    "Shirts",
	})

	assert.Equal(t, "garments.category = ?", sql)
	assert.Equal(t, []any{"Shirts"}, args)
}

func TestCompile_NotEquals(t *testing.T) {
	sql, args := mustSQL(t, domain.CollectionRule{
		Field:    domain.FieldBrand,
		Operator: domain.OpNotEquals,
		Value:    "Acme",
	})

	assert.Equal(t, "garments.brand <> ?", sql)
	assert.Equal(t, []any{"Acme"}, args)
}

func TestCompile_Contains_CaseFolded(t *testing.T) {
	sql, args := mustSQL(t, domain.CollectionRule{
		Field:    domain.FieldColor,
		Operator: domain.OpContains,
		Value:    "Blue",
	})

	assert.Equal(t, "LOWER(garments.color) LIKE ? ESCAPE '\\'", sql)
	assert.Equal(t, []any{"%blue%"}, args)
}

func TestCompile_NotContains(t *testing.T) {
	sql, args := mustSQL(t, domain.CollectionRule{
		Field:    domain.FieldMaterial,
		Operator: domain.OpNotContains,
		Value:    "Wool",
	})

	assert.Equal(t, "LOWER(garments.material) NOT LIKE ? ESCAPE '\\'", sql)
	assert.Equal(t, []any{"%wool%"}, args)
}

func TestCompile_StartsWithEndsWith(t *testing.T) {
	sql, args := mustSQL(t, domain.CollectionRule{
		Field:    domain.FieldColor,
		Operator: domain.OpStartsWith,
		Value:    "Nav",
	})
	assert.Equal(t, "LOWER(garments.color) LIKE ? ESCAPE '\\'", sql)
	assert.Equal(t, []any{"nav%"}, args)

	sql, args = mustSQL(t, domain.CollectionRule{
		Field:    domain.FieldBrand,
		Operator: domain.OpEndsWith,
		Value:    "Co",
	})
	assert.Equal(t, "LOWER(garments.brand) LIKE ? ESCAPE '\\'", sql)
	assert.Equal(t, []any{"%co"}, args)
}

func TestCompile_LikeMetacharactersMatchLiterally(t *testing.T) {
	sql, args := mustSQL(t, domain.CollectionRule{
		Field:    domain.FieldMaterial,
		Operator: domain.OpContains,
		Value:    "100% Cotton",
	})
	assert.Equal(t, "LOWER(garments.material) LIKE ? ESCAPE '\\'", sql)
	assert.Equal(t, []any{`%100\% cotton%`}, args)

	_, args = mustSQL(t, domain.CollectionRule{
		Field:    domain.FieldBrand,
		Operator: domain.OpStartsWith,
		Value:    "A_B",
	})
	assert.Equal(t, []any{`a\_b%`}, args)

	_, args = mustSQL(t, domain.CollectionRule{
		Field:    domain.FieldBrand,
		Operator: domain.OpEndsWith,
		Value:    `X\Y`,
	})
	assert.Equal(t, []any{`%x\\y`}, args)
}

func TestCompile_In_SplitsAndTrims(t *testing.T) {
	sql, args := mustSQL(t, domain.CollectionRule{
		Field:    domain.FieldCategory,
		Operator: domain.OpIn,
		Value:    "Shirts, Pants , ,Jackets",
	})

	assert.Equal(t, "LOWER(garments.category) IN (?,?,?)", sql)
	assert.Equal(t, []any{"shirts", "pants", "jackets"}, args)
}

func TestCompile_In_EmptyList(t *testing.T) {
	frag := Compile(domain.CollectionRule{
		Field:    domain.FieldCategory,
		Operator: domain.OpIn,
		Value:    " , ,",
	})
	assert.Nil(t, frag)
}

func TestCompile_TagsExistentialSubquery(t *testing.T) {
	sql, args := mustSQL(t, domain.CollectionRule{
		Field:    domain.FieldTags,
		Operator: domain.OpIn,
		Value:    "Work, Weekend",
	})

	assert.Contains(t, sql, "EXISTS (SELECT 1 FROM garment_tags gt JOIN tags t ON t.id = gt.tag_id")
	assert.Contains(t, sql, "gt.garment_id = garments.id")
	assert.Contains(t, sql, "LOWER(t.name) IN (?,?)")
	assert.Equal(t, []any{"work", "weekend"}, args)
}

func TestCompile_TagsEquals(t *testing.T) {
	sql, args := mustSQL(t, domain.CollectionRule{
		Field:    domain.FieldTags,
		Operator: domain.OpEquals,
		Value:    "Work",
	})

	assert.Contains(t, sql, "t.name = ?")
	assert.Equal(t, []any{"Work"}, args)
}

func TestCompile_UnknownField(t *testing.T) {
	frag := Compile(domain.CollectionRule{
		Field:    domain.RuleField("size"),
		Operator: domain.OpEquals,
		Value:    "M",
	})
	assert.Nil(t, frag)
}

func TestCompile_UnknownOperator(t *testing.T) {
	frag := Compile(domain.CollectionRule{
		Field:    domain.FieldCategory,
		Operator: domain.RuleOperator("MATCHES"),
		Value:    "Shirts",
	})
	assert.Nil(t, frag)
}
