package sql

import (
	_ "embed"
)

//go:embed queries/select_lab.sql
var SelectLab string

//go:embed queries/select_lab_material_types.sql
var SelectLabMaterialTypes string

//go:embed queries/select_lab_materials.sql
var SelectLabMaterials string

//go:embed queries/select_lab_overrides.sql
var SelectLabOverrides string

//go:embed queries/upsert_lab.sql
var UpsertLab string

//go:embed queries/insert_lab_material_type.sql
var InsertLabMaterialType string

//go:embed queries/insert_lab_material.sql
var InsertLabMaterial string

//go:embed queries/insert_lab_override.sql
var InsertLabOverride string

//go:embed queries/register_batch.sql
var RegisterBatch string

//go:embed queries/lookup_quoted_batch.sql
var LookupQuotedBatch string

//go:embed queries/update_batch_status.sql
var UpdateBatchStatus string

//go:embed queries/complete_batch.sql
var CompleteBatch string

//go:embed queries/delete_batch_summaries.sql
var DeleteBatchSummaries string

//go:embed queries/analyze_summaries.sql
var AnalyzeSummaries string
