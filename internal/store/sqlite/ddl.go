package sqlite

// schema bootstraps the source tables. Production deployments point the
// service at the CRM's PostgreSQL database; the SQLite driver exists for
// local development and tests, so it owns its own DDL.
const schema = `
CREATE TABLE IF NOT EXISTS tasks (
    task_id           TEXT PRIMARY KEY,
    tenant_id         TEXT NOT NULL,
    title             TEXT NOT NULL,
    description       TEXT,
    status            TEXT NOT NULL,
    priority          TEXT NOT NULL DEFAULT 'MEDIUM',
    due_date          TIMESTAMP,
    completed_at      TIMESTAMP,
    created_at        TIMESTAMP NOT NULL,
    assignee_id       TEXT,
    assignee_name     TEXT,
    related_entity_id TEXT,
    contact_id        TEXT,
    metadata          TEXT
);
CREATE INDEX IF NOT EXISTS idx_tasks_tenant_entity ON tasks(tenant_id, related_entity_id);
CREATE INDEX IF NOT EXISTS idx_tasks_tenant_due ON tasks(tenant_id, due_date);

CREATE TABLE IF NOT EXISTS appointments (
    appointment_id    TEXT PRIMARY KEY,
    tenant_id         TEXT NOT NULL,
    title             TEXT NOT NULL,
    description       TEXT,
    status            TEXT NOT NULL,
    start_time        TIMESTAMP NOT NULL,
    end_time          TIMESTAMP,
    location          TEXT,
    meeting_url       TEXT,
    organizer_id      TEXT NOT NULL,
    attendees         TEXT,
    related_entity_id TEXT
);
CREATE INDEX IF NOT EXISTS idx_appointments_tenant_start ON appointments(tenant_id, start_time);

CREATE TABLE IF NOT EXISTS audit_log (
    entry_id    TEXT PRIMARY KEY,
    tenant_id   TEXT NOT NULL,
    entity_type TEXT NOT NULL,
    entity_id   TEXT NOT NULL,
    action      TEXT NOT NULL,
    actor_id    TEXT,
    actor_name  TEXT,
    changes     TEXT,
    created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_tenant_entity ON audit_log(tenant_id, entity_type, entity_id, created_at);

CREATE TABLE IF NOT EXISTS domain_events (
    event_id     TEXT PRIMARY KEY,
    tenant_id    TEXT NOT NULL,
    event_type   TEXT NOT NULL,
    aggregate_id TEXT NOT NULL,
    agent_id     TEXT NOT NULL DEFAULT '',
    payload      TEXT,
    occurred_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_tenant_type ON domain_events(tenant_id, event_type, occurred_at);

CREATE TABLE IF NOT EXISTS emails (
    message_id        TEXT PRIMARY KEY,
    tenant_id         TEXT NOT NULL,
    subject           TEXT NOT NULL,
    snippet           TEXT,
    from_address      TEXT NOT NULL,
    to_address        TEXT NOT NULL,
    sender_user_id    TEXT,
    sent_at           TIMESTAMP NOT NULL,
    related_entity_id TEXT
);
CREATE INDEX IF NOT EXISTS idx_emails_tenant_entity ON emails(tenant_id, related_entity_id, sent_at);

CREATE TABLE IF NOT EXISTS chat_messages (
    message_id        TEXT PRIMARY KEY,
    tenant_id         TEXT NOT NULL,
    body              TEXT NOT NULL,
    author_id         TEXT NOT NULL,
    author_name       TEXT NOT NULL,
    author_user_id    TEXT,
    sent_at           TIMESTAMP NOT NULL,
    related_entity_id TEXT
);
CREATE INDEX IF NOT EXISTS idx_chats_tenant_entity ON chat_messages(tenant_id, related_entity_id, sent_at);

CREATE TABLE IF NOT EXISTS phone_calls (
    call_id           TEXT PRIMARY KEY,
    tenant_id         TEXT NOT NULL,
    from_number       TEXT NOT NULL,
    to_number         TEXT NOT NULL,
    placed_by_user_id TEXT,
    duration_seconds  INTEGER NOT NULL DEFAULT 0,
    notes             TEXT,
    started_at        TIMESTAMP NOT NULL,
    related_entity_id TEXT
);
CREATE INDEX IF NOT EXISTS idx_calls_tenant_entity ON phone_calls(tenant_id, related_entity_id, started_at);

CREATE TABLE IF NOT EXISTS documents (
    document_id       TEXT PRIMARY KEY,
    tenant_id         TEXT NOT NULL,
    file_name         TEXT NOT NULL,
    related_entity_id TEXT
);
CREATE INDEX IF NOT EXISTS idx_documents_tenant_entity ON documents(tenant_id, related_entity_id);

CREATE TABLE IF NOT EXISTS document_audit (
    entry_id    TEXT PRIMARY KEY,
    tenant_id   TEXT NOT NULL,
    document_id TEXT NOT NULL,
    action      TEXT NOT NULL,
    actor_id    TEXT,
    actor_name  TEXT,
    version     INTEGER,
    created_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_doc_audit_doc ON document_audit(tenant_id, document_id, created_at);
`
