package models

import "encoding/json"

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type ListModelsParams struct {
	Skip      int    `query:"skip" default:"0"`
	Limit     int    `query:"limit" default:"20"`
	Framework string `query:"framework"`
	Status    string `query:"status"`
	Search    string `query:"search"`
}

type ModelParams struct {
	Id string `path:"id"`
}

// ModelCreate is the body of POST /models.
type ModelCreate struct {
	Name        string             `json:"name" binding:"required,min=1,max=100,modelname"`
	Description *string            `json:"description" binding:"omitnil,max=1000"`
	Framework   string             `json:"framework" binding:"required,oneof=sklearn tensorflow pytorch xgboost lightgbm onnx other"`
	Tags        []string           `json:"tags"`
	Version     *string            `json:"version" binding:"omitnil,modelversion"`
	Metrics     map[string]float64 `json:"metrics"`
	Author      *string            `json:"author" binding:"omitnil,max=100"`

	present fieldSet
}

func (in *ModelCreate) UnmarshalJSON(data []byte) error {
	type plain ModelCreate
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	present, err := presentFields(data)
	if err != nil {
		return err
	}
	*in = ModelCreate(p)
	in.present = present
	return nil
}

// Has reports whether field was sent in the body, null included.
func (in *ModelCreate) Has(field string) bool { return in.present[field] }

// UpdateModelInput is the body of PUT /models/:id. Absent fields are left untouched.
type UpdateModelInput struct {
	Id          string    `path:"id" json:"-"`
	Name        *string   `json:"name" binding:"omitnil,min=1,max=100,modelname"`
	Description *string   `json:"description" binding:"omitnil,max=1000"`
	Tags        *[]string `json:"tags"`

	present fieldSet
}

func (in *UpdateModelInput) UnmarshalJSON(data []byte) error {
	type plain UpdateModelInput
	p := plain{Id: in.Id}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	present, err := presentFields(data)
	if err != nil {
		return err
	}
	*in = UpdateModelInput(p)
	in.present = present
	return nil
}

// Has reports whether field was sent in the body, null included.
func (in *UpdateModelInput) Has(field string) bool { return in.present[field] }

// fieldSet holds the top-level keys of a JSON object body.
type fieldSet map[string]bool

func presentFields(data []byte) (fieldSet, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	set := make(fieldSet, len(raw))
	for k := range raw {
		set[k] = true
	}
	return set, nil
}

type DeploymentInput struct {
	Id     string `path:"id" json:"-"`
	Status string `json:"status" binding:"required,oneof=development staging production archived"`
}

type ModelVersionInput struct {
	Id        string             `path:"id" json:"-"`
	Version   string             `json:"version" binding:"required,modelversion"`
	Metrics   map[string]float64 `json:"metrics"`
	Changelog *string            `json:"changelog"`
}

// ModelFilter is the repository-level form of ListModelsParams.
type ModelFilter struct {
	Skip      int
	Limit     int
	Framework *Framework
	Status    *DeploymentStatus
	Search    string
}

// ModelSpec carries the already validated fields of a new model.
type ModelSpec struct {
	Name        string
	Description *string
	Framework   Framework
	Tags        []string
	Version     string
	Metrics     Metrics
	Author      *string
}

// ModelPatch holds the fields of a partial update; nil means "leave as is".
// ClearDescription sets the description to NULL.
type ModelPatch struct {
	Name             *string
	Description      *string
	ClearDescription bool
	Tags             *[]string
}

type VersionSpec struct {
	Version   string
	Metrics   Metrics
	Changelog *string
}
