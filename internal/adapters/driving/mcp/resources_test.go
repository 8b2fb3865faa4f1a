package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docvec/internal/core/domain"
)

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestExtractCollectionName(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{uri: "docvec://collections/docs", want: "docs"},
		{uri: "docvec://collections/", want: ""},
		{uri: "docvec://collections/a/b", want: ""},
		{uri: "other://collections/docs", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, extractCollectionName(tt.uri))
		})
	}
}

func TestServer_handleCollectionsResource(t *testing.T) {
	tp := newTestPorts()
	tp.collections.names = []string{"docs"}
	tp.collections.infos["docs"] = &domain.CollectionInfo{
		Collection:  domain.Collection{Name: "docs", Dimension: 8, Distance: domain.DistanceCosine},
		PointsCount: 3,
	}
	server := newTestServer(t, tp)

	result, err := server.handleCollectionsResource(context.Background(), readRequest("docvec://collections"))
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var infos []CollectionInfoOutput
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, 3, infos[0].PointsCount)
}

func TestServer_handleCollectionResource(t *testing.T) {
	tp := newTestPorts()
	tp.collections.infos["docs"] = &domain.CollectionInfo{
		Collection: domain.Collection{Name: "docs", Dimension: 8, Distance: domain.DistanceCosine},
	}
	server := newTestServer(t, tp)
	ctx := context.Background()

	result, err := server.handleCollectionResource(ctx, readRequest("docvec://collections/docs"))
	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, `"dimension": 8`)

	_, err = server.handleCollectionResource(ctx, readRequest("docvec://collections/missing"))
	assert.Error(t, err)

	_, err = server.handleCollectionResource(ctx, readRequest("docvec://collections/"))
	assert.Error(t, err)
}

func TestServer_handleUploadsResource(t *testing.T) {
	tp := newTestPorts()
	tp.uploads.files = []domain.UploadedFile{{Name: "a.txt", Size: 1}}
	server := newTestServer(t, tp)

	result, err := server.handleUploadsResource(context.Background(), readRequest("docvec://uploads"))
	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, "a.txt")
}
