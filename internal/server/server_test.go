package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgxtools/pgx-report/internal/analyze"
)

const sampleVCF = `##fileformat=VCFv4.2
#CHROM	POS	ID	REF	ALT	QUAL	FILTER	INFO	FORMAT	PATIENT_X
chr10	96702047	rs1799853	C	T	.	PASS	.	GT	1/1
chr22	42524947	rs3892097	G	A	.	PASS	.	GT	0/1
`

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := New(nil, nil)

	w := doRequest(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := New(nil, nil)

	w := doRequest(t, s, http.MethodPost, "/api/v1/analyze", map[string]any{
		"vcf":        sampleVCF,
		"patient_id": "PATIENT_X",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var result analyze.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))

	assert.Equal(t, "PATIENT_X", result.PatientID)
	assert.Equal(t, 2, result.TotalVariants)
	require.Len(t, result.Reports, 6)

	byGene := map[string]analyze.Report{}
	for _, r := range result.Reports {
		byGene[r.Profile.Gene] = r
	}
	assert.Equal(t, "*2/*2", byGene["CYP2C9"].Profile.Diplotype)
	assert.Equal(t, "PM", string(byGene["CYP2C9"].Profile.Phenotype))
}

func TestAnalyzeEndpointBadRequest(t *testing.T) {
	s := New(nil, nil)

	w := doRequest(t, s, http.MethodPost, "/api/v1/analyze", map[string]any{
		"patient_id": "PATIENT_X",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeEndpointStrictValidation(t *testing.T) {
	s := New(nil, nil)

	// No ##fileformat header, so strict mode must reject it.
	w := doRequest(t, s, http.MethodPost, "/api/v1/analyze", map[string]any{
		"vcf":    "#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\nchr1\t100\trs1\tA\tG\t.\tPASS\t.\n",
		"strict": true,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "validation failed")
}

func TestCatalogEndpoint(t *testing.T) {
	s := New(nil, nil)

	w := doRequest(t, s, http.MethodGet, "/api/v1/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Genes   []string          `json:"genes"`
		Markers []json.RawMessage `json:"markers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Contains(t, body.Genes, "CYP2D6")
	assert.NotEmpty(t, body.Markers)
}
