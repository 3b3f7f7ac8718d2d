package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
    file_path            TEXT PRIMARY KEY,
    session_id           TEXT NOT NULL,
    project_name         TEXT NOT NULL,
    project_path         TEXT,
    first_timestamp      TEXT,
    last_timestamp       TEXT,
    message_count        INTEGER,
    input_tokens         INTEGER,
    output_tokens        INTEGER,
    cache_read_tokens    INTEGER,
    cache_creation_tokens INTEGER,
    tool_calls_count     INTEGER,
    tool_names           TEXT,
    models_used          TEXT,
    git_branch           TEXT,
    version              TEXT,
    file_mtime_ns        INTEGER NOT NULL,
    file_size            INTEGER NOT NULL,
    parsed_at            TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_last ON sessions(last_timestamp);
CREATE INDEX IF NOT EXISTS idx_sessions_project ON sessions(project_name);
`
