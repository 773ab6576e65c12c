package memory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-studio/internal/domain"
	"github.com/jhoicas/invoice-studio/internal/domain/entity"
	"github.com/jhoicas/invoice-studio/internal/infrastructure/memory"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestDraftRepo_CreateValida(t *testing.T) {
	repo := memory.NewDraftRepository()

	assert.ErrorIs(t, repo.Create(nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, repo.Create(&entity.InvoiceDraft{}), domain.ErrInvalidInput)

	d := entity.NewInvoiceDraft("a", t0)
	require.NoError(t, repo.Create(d))
	assert.Error(t, repo.Create(d), "ID duplicado")
	assert.Equal(t, 1, repo.Count())
}

func TestDraftRepo_GetByIDNoExiste(t *testing.T) {
	repo := memory.NewDraftRepository()

	got, err := repo.GetByID("x")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestDraftRepo_AislamientoDeCopias(t *testing.T) {
	repo := memory.NewDraftRepository()
	d := entity.NewInvoiceDraft("a", t0)
	require.NoError(t, repo.Create(d))

	d.CustomerName = "modificado tras crear"
	got, err := repo.GetByID("a")
	require.NoError(t, err)
	assert.Equal(t, "", got.CustomerName)

	got.Items = append(got.Items, entity.NewLineItem())
	again, err := repo.GetByID("a")
	require.NoError(t, err)
	assert.Len(t, again.Items, 1)
}

func TestDraftRepo_UpdateConfirmaSoloSiNoFalla(t *testing.T) {
	repo := memory.NewDraftRepository()
	require.NoError(t, repo.Create(entity.NewInvoiceDraft("a", t0)))

	boom := errors.New("boom")
	_, err := repo.Update("a", func(d *entity.InvoiceDraft) error {
		d.CustomerName = "a medias"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetByID("a")
	require.NoError(t, err)
	assert.Equal(t, "", got.CustomerName)

	updated, err := repo.Update("a", func(d *entity.InvoiceDraft) error {
		d.CustomerName = "ok"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", updated.CustomerName)

	missing, err := repo.Update("zzz", func(*entity.InvoiceDraft) error { return nil })
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDraftRepo_DeleteIdleSince(t *testing.T) {
	repo := memory.NewDraftRepository()
	require.NoError(t, repo.Create(entity.NewInvoiceDraft("viejo", t0)))
	require.NoError(t, repo.Create(entity.NewInvoiceDraft("nuevo", t0.Add(time.Hour))))

	assert.Equal(t, 1, repo.DeleteIdleSince(t0.Add(30*time.Minute)))
	assert.Equal(t, 1, repo.Count())

	got, err := repo.GetByID("viejo")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByID("nuevo")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
