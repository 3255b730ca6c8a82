package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DocumentService stores shipment paperwork (packing lists, customs forms)
// in object storage. Objects are keyed by tenant and shipment so listing a
// shipment's documents is a prefix scan.
type DocumentService interface {
	UploadShipmentDocument(ctx context.Context, tenantID, shipmentID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error)
	ListShipmentDocuments(ctx context.Context, tenantID, shipmentID uuid.UUID) ([]string, error)
	GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	DeleteShipmentDocument(ctx context.Context, objectName string) error
	EnsureBucketExists(ctx context.Context) error
}

type minioDocumentService struct {
	client *minio.Client
	bucket string
}

func NewDocumentService(endpoint, accessKey, secretKey, bucket string, useSSL bool) (DocumentService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioDocumentService{client: client, bucket: bucket}, nil
}

func shipmentPrefix(tenantID, shipmentID uuid.UUID) string {
	return fmt.Sprintf("shipments/%s/%s/", tenantID, shipmentID)
}

func (m *minioDocumentService) UploadShipmentDocument(ctx context.Context, tenantID, shipmentID uuid.UUID, filename, contentType string, reader io.Reader, size int64) (string, error) {
	objectName := shipmentPrefix(tenantID, shipmentID) + path.Base(filename)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := m.client.PutObject(ctx, m.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

func (m *minioDocumentService) ListShipmentDocuments(ctx context.Context, tenantID, shipmentID uuid.UUID) ([]string, error) {
	objects := []string{}
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    shipmentPrefix(tenantID, shipmentID),
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		objects = append(objects, obj.Key)
	}
	return objects, nil
}

func (m *minioDocumentService) GetPresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(ctx, m.bucket, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *minioDocumentService) DeleteShipmentDocument(ctx context.Context, objectName string) error {
	return m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{})
}

func (m *minioDocumentService) EnsureBucketExists(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}
