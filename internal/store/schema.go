package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS conversations (
    file_path            TEXT NOT NULL,
    ord                  INTEGER NOT NULL,
    uuid                 TEXT,
    name                 TEXT,
    start_time           TEXT NOT NULL,
    end_time             TEXT,
    duration_secs        REAL,
    dialogue_turns       INTEGER,
    input_tokens         INTEGER,
    output_tokens        INTEGER,
    PRIMARY KEY (file_path, ord)
);

CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    parse_errors         INTEGER NOT NULL DEFAULT 0,
    parsed_at            TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_conversations_start ON conversations(start_time);
`
