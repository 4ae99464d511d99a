package handler

import (
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-screening-go/internal/constants"
)

func validForm() *multipart.Form {
	return &multipart.Form{
		Value: map[string][]string{
			"job_description": {"build web applications"},
			"skills":          {"react, docker"},
			"experience":      {"3 years"},
			"education":       {"Computer Science"},
		},
	}
}

func TestValidateJobForm(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		job, err := validateJobForm(validForm())
		require.NoError(t, err)
		assert.Equal(t, "build web applications", job.Description)
		assert.Equal(t, "react, docker", job.Skills)
	})

	t.Run("fields trimmed", func(t *testing.T) {
		form := validForm()
		form.Value["skills"] = []string{"  react  "}
		job, err := validateJobForm(form)
		require.NoError(t, err)
		assert.Equal(t, "react", job.Skills)
	})

	t.Run("missing field", func(t *testing.T) {
		form := validForm()
		delete(form.Value, "education")
		_, err := validateJobForm(form)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "education")
	})

	t.Run("whitespace only field", func(t *testing.T) {
		form := validForm()
		form.Value["experience"] = []string{"   "}
		_, err := validateJobForm(form)
		assert.Error(t, err)
	})

	t.Run("description too long", func(t *testing.T) {
		form := validForm()
		form.Value["job_description"] = []string{strings.Repeat("a", constants.MaxJobDescriptionLen+1)}
		_, err := validateJobForm(form)
		assert.Error(t, err)
	})

	t.Run("education too long", func(t *testing.T) {
		form := validForm()
		form.Value["education"] = []string{strings.Repeat("a", constants.MaxJobEducationLen+1)}
		_, err := validateJobForm(form)
		assert.Error(t, err)
	})
}

func TestValidateFiles(t *testing.T) {
	pdf := func(name string, size int64) *multipart.FileHeader {
		return &multipart.FileHeader{Filename: name, Size: size}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validateFiles([]*multipart.FileHeader{pdf("a.pdf", 1024)}, 10))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Error(t, validateFiles(nil, 10))
	})

	t.Run("too many", func(t *testing.T) {
		files := []*multipart.FileHeader{pdf("a.pdf", 1), pdf("b.pdf", 1), pdf("c.pdf", 1)}
		assert.Error(t, validateFiles(files, 2))
	})

	t.Run("missing filename", func(t *testing.T) {
		assert.Error(t, validateFiles([]*multipart.FileHeader{pdf("", 1)}, 10))
	})

	t.Run("wrong extension", func(t *testing.T) {
		assert.Error(t, validateFiles([]*multipart.FileHeader{pdf("resume.docx", 1)}, 10))
	})

	t.Run("oversized file", func(t *testing.T) {
		assert.Error(t, validateFiles([]*multipart.FileHeader{pdf("big.pdf", constants.MaxFileSize+1)}, 10))
	})
}

func TestAllowedFile(t *testing.T) {
	assert.True(t, allowedFile("resume.pdf"))
	assert.True(t, allowedFile("resume.PDF"))
	assert.True(t, allowedFile("archive.tar.pdf"))
	assert.False(t, allowedFile("resume.docx"))
	assert.False(t, allowedFile("resume"))
	assert.False(t, allowedFile("pdf"))
}
