package catalog

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/agenciasgt/distribuidores-backend/pkg/db/models"
	pkgerrors "github.com/agenciasgt/distribuidores-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImageBase64(t *testing.T) {
	raw := []byte("fake-image-bytes")
	encoded := base64.StdEncoding.EncodeToString(raw)
	jpeg := "image/jpeg"

	data, typ, err := DecodeImageBase64(encoded, &jpeg)
	require.NoError(t, err)
	assert.Equal(t, raw, data)
	assert.Equal(t, &jpeg, typ)

	// data URI prefix is stripped
	data, _, err = DecodeImageBase64("data:image/jpeg;base64,"+encoded, &jpeg)
	require.NoError(t, err)
	assert.Equal(t, raw, data)

	// empty payload decodes to nothing without error
	data, _, err = DecodeImageBase64("   ", nil)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestDecodeImageBase64Invalid(t *testing.T) {
	_, _, err := DecodeImageBase64("!!not-base64!!", nil)
	require.Error(t, err)
	assert.Equal(t, "Imagen inválida: formato base64 incorrecto", pkgerrors.Message(err))

	bad := "application/pdf"
	encoded := base64.StdEncoding.EncodeToString([]byte("x"))
	_, _, err = DecodeImageBase64(encoded, &bad)
	require.Error(t, err)
	assert.Equal(t, "Formato de imagen no válido", pkgerrors.Message(err))
}

func TestDecodeImageBase64TooLarge(t *testing.T) {
	big := make([]byte, MaxImageSizeBytes+1)
	encoded := base64.StdEncoding.EncodeToString(big)

	_, _, err := DecodeImageBase64(encoded, nil)
	require.Error(t, err)
	assert.Equal(t, "La imagen excede el tamaño máximo de 5MB", pkgerrors.Message(err))
}

func TestGalleryIndexing(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	part := seedPart(t, client, "GAL-1", 5, 0)

	count, err := svc.GalleryCount(ctx, part.PartID)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// primary blob becomes index 0
	jpeg := "image/jpeg"
	_, err = svc.UpdatePartImage(ctx, part.PartID, []byte("principal"), &jpeg)
	require.NoError(t, err)

	require.NoError(t, svc.AddPartImage(ctx, part.PartID, []byte("segunda"), &jpeg))
	require.NoError(t, svc.AddPartImage(ctx, part.PartID, []byte("tercera"), &jpeg))

	count, err = svc.GalleryCount(ctx, part.PartID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	img, err := svc.PartImageByIndex(ctx, part.PartID, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("principal"), img.Data)

	img, err = svc.PartImageByIndex(ctx, part.PartID, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte("segunda"), img.Data)

	img, err = svc.PartImageByIndex(ctx, part.PartID, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte("tercera"), img.Data)

	_, err = svc.PartImageByIndex(ctx, part.PartID, 3)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))

	_, err = svc.PartImageByIndex(ctx, part.PartID, -1)
	require.Error(t, err)
}

func TestGalleryCountUnknownPart(t *testing.T) {
	svc, _ := newTestService(t)

	count, err := svc.GalleryCount(context.Background(), 9999)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestAddPartImageValidates(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	part := seedPart(t, client, "GAL-2", 5, 0)

	bad := "text/plain"
	err := svc.AddPartImage(ctx, part.PartID, []byte("x"), &bad)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	err = svc.AddPartImage(ctx, 9999, []byte("x"), nil)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))

	var images []models.PartImage
	require.NoError(t, client.DB().Find(&images).Error)
	assert.Empty(t, images)
}
