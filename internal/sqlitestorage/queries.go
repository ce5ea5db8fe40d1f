package sqlitestorage

const (
	createTablesQuery = `
	CREATE TABLE IF NOT EXISTS user (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS task (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		author_id INTEGER NOT NULL,
		created TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		priority TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (author_id) REFERENCES user (id)
	)
`

	createIndexQuery = `
	CREATE INDEX IF NOT EXISTS idx_task_author_created ON task (author_id, created)
`

	dropTablesQuery = `
	DROP TABLE IF EXISTS task;
	DROP TABLE IF EXISTS user
`

	insertUserQuery = `INSERT INTO user (username, password_hash) VALUES (?, ?)`

	getUserByUsernameQuery = `SELECT id, username, password_hash FROM user WHERE username = ?`

	getUserByIdQuery = `SELECT id, username, password_hash FROM user WHERE id = ?`

	listTasksByAuthorQuery = `
	SELECT t.id, t.title, t.description, t.status, t.priority, t.author_id, t.created, u.username
	FROM task t JOIN user u ON t.author_id = u.id
	WHERE t.author_id = ?
	ORDER BY t.created ASC, t.id ASC
`

	getTaskByIdQuery = `
	SELECT t.id, t.title, t.description, t.status, t.priority, t.author_id, t.created, u.username
	FROM task t JOIN user u ON t.author_id = u.id
	WHERE t.id = ?
`

	insertTaskQuery = `
	INSERT INTO task (title, description, status, priority, author_id, created)
	VALUES (?, ?, ?, ?, ?, ?)
`

	updateTaskQuery = `
	UPDATE task
	SET title = ?, description = ?, status = ?, priority = ?, author_id = ?, created = ?
	WHERE id = ?
`

	setTaskStatusQuery = `UPDATE task SET status = ?, created = ? WHERE id = ?`

	deleteTaskQuery = `DELETE FROM task WHERE id = ?`
)
