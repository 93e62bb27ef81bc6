package pgstore

// Results carry no foreign key: a result may be written for a monitor that
// was deleted a moment ago, and DeleteMonitor removes it explicitly.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS monitors (
  id               TEXT PRIMARY KEY,
  url              TEXT NOT NULL,
  interval_seconds INTEGER NOT NULL,
  tags             TEXT[] NOT NULL DEFAULT '{}',
  created_at       TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS monitor_last_results (
  monitor_id  TEXT PRIMARY KEY,
  url         TEXT NOT NULL,
  ok          BOOLEAN NOT NULL,
  status_code INTEGER NULL,
  latency_ms  DOUBLE PRECISION NOT NULL,
  checked_at  TIMESTAMPTZ NOT NULL,
  error       TEXT NULL
);
`
