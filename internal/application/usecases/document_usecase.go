package usecases

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
)

// ErrInvalidDocumentType rejeita tipos fora da enumeração fixa.
var ErrInvalidDocumentType = errors.New("tipo de documento inválido")

// DocumentUploadInput são os metadados recebidos no upload.
type DocumentUploadInput struct {
	InstitutionID int
	FileName      string
	DocumentType  string
	Description   string
	FileSize      int
	MimeType      string
	UploadedByID  int
}

// DocumentUseCase administra os documentos institucionais e sua análise de
// brechas de conformidade.
type DocumentUseCase struct {
	storage  repositories.Storage
	analyzer DocumentAnalyzer
	now      func() time.Time
}

// DocumentAnalyzer produz o resultado de análise de um documento. A
// implementação atual é substituição de template por tipo de documento.
type DocumentAnalyzer interface {
	Analyze(document entities.InstitutionDocument) entities.AnalysisResult
}

func NewDocumentUseCase(storage repositories.Storage, analyzer DocumentAnalyzer) *DocumentUseCase {
	return &DocumentUseCase{storage: storage, analyzer: analyzer, now: time.Now}
}

func (uc *DocumentUseCase) GetDocuments(ctx context.Context, institutionID int, documentType string) ([]entities.InstitutionDocument, error) {
	if documentType != "" {
		return uc.storage.GetInstitutionDocumentsByType(ctx, institutionID, documentType)
	}
	return uc.storage.GetInstitutionDocuments(ctx, institutionID)
}

// Upload registra os metadados do arquivo. O nome em disco recebe um prefixo
// UUID para nunca colidir com uploads anteriores do mesmo arquivo.
func (uc *DocumentUseCase) Upload(ctx context.Context, input DocumentUploadInput) (entities.InstitutionDocument, error) {
	if !entities.IsValidDocumentType(input.DocumentType) {
		return entities.InstitutionDocument{}, ErrInvalidDocumentType
	}
	if _, err := uc.storage.GetInstitution(ctx, input.InstitutionID); err != nil {
		return entities.InstitutionDocument{}, err
	}

	storedName := uuid.NewString() + filepath.Ext(input.FileName)
	mimeType := input.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	var description *string
	if input.Description != "" {
		description = &input.Description
	}

	document := entities.InstitutionDocument{
		InstitutionID: input.InstitutionID,
		FileName:      storedName,
		OriginalName:  input.FileName,
		FilePath:      fmt.Sprintf("/uploads/%d/%s", input.InstitutionID, storedName),
		FileSize:      input.FileSize,
		MimeType:      mimeType,
		DocumentType:  input.DocumentType,
		Description:   description,
		UploadedByID:  input.UploadedByID,
	}
	if err := uc.storage.CreateInstitutionDocument(ctx, &document); err != nil {
		return entities.InstitutionDocument{}, err
	}

	activity := entities.Activity{
		Type:          entities.ActivityDocumentUploaded,
		Description:   fmt.Sprintf("subió el documento \"%s\" (%s)", input.FileName, input.DocumentType),
		UserID:        input.UploadedByID,
		InstitutionID: input.InstitutionID,
	}
	if err := uc.storage.CreateActivity(ctx, &activity); err != nil {
		return document, err
	}
	return document, nil
}

// Analyze roda a análise de brechas e carimba analyzedAt. Reanalisar um
// documento sobrescreve o resultado anterior.
func (uc *DocumentUseCase) Analyze(ctx context.Context, documentID int) (entities.InstitutionDocument, error) {
	document, err := uc.storage.GetInstitutionDocument(ctx, documentID)
	if err != nil {
		return entities.InstitutionDocument{}, err
	}
	result := uc.analyzer.Analyze(document)
	return uc.storage.SetDocumentAnalysis(ctx, documentID, result, uc.now())
}

func (uc *DocumentUseCase) Delete(ctx context.Context, documentID int) (bool, error) {
	return uc.storage.DeleteInstitutionDocument(ctx, documentID)
}
