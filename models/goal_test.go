package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccountIDs(t *testing.T) {
	g := &Goal{AccountIDs: "[1,2,3]"}

	ids, err := g.ParseAccountIDs()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids)
}

func TestParseAccountIDsMalformed(t *testing.T) {
	g := &Goal{AccountIDs: "не список"}

	ids, err := g.ParseAccountIDs()
	assert.Error(t, err, "повреждённый список счетов должен давать ошибку формата данных")
	assert.Nil(t, ids)
	assert.Contains(t, err.Error(), "некорректный формат списка счетов")
}

func TestParseAccountIDsEmpty(t *testing.T) {
	g := &Goal{}

	ids, err := g.ParseAccountIDs()
	require.NoError(t, err)
	assert.Empty(t, ids, "пустое поле означает отсутствие привязанных счетов, а не ошибку")
}
