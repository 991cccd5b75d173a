package store

// Schema mirrors the layout downstream consumers already query: table
// metadata, row data as JSONB, and a flat formula table. Indexes are created
// separately, after bulk load.
const schema = `
CREATE TABLE IF NOT EXISTS table_metadata (
    id SERIAL PRIMARY KEY,
    file_name VARCHAR(500),
    sheet_name VARCHAR(255),
    table_name VARCHAR(255),
    table_type VARCHAR(50),
    range VARCHAR(100),
    row_count INTEGER DEFAULT 0,
    headers JSONB,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS table_data (
    id SERIAL PRIMARY KEY,
    metadata_id INTEGER REFERENCES table_metadata(id) ON DELETE CASCADE,
    row_number INTEGER,
    data JSONB,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS excel_formulas (
    id SERIAL PRIMARY KEY,
    file_name VARCHAR(500),
    sheet_name VARCHAR(255),
    cell_address VARCHAR(50),
    formula TEXT,
    readable_formula TEXT,
    dependencies JSONB,
    context JSONB,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

const indexes = `
CREATE INDEX IF NOT EXISTS idx_file_sheet ON table_metadata(file_name, sheet_name);
CREATE INDEX IF NOT EXISTS idx_table_name ON table_metadata(table_name);
CREATE INDEX IF NOT EXISTS idx_metadata_id ON table_data(metadata_id);
CREATE INDEX IF NOT EXISTS idx_data_gin ON table_data USING GIN(data);
CREATE INDEX IF NOT EXISTS idx_formula_file ON excel_formulas(file_name, sheet_name);
CREATE INDEX IF NOT EXISTS idx_cell_address ON excel_formulas(cell_address);
`
