// SPDX-License-Identifier: GPL-3.0-or-later
package store

import migrate "github.com/rubenv/sql-migrate"

var migrationSource = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "1_messages",
			Up: []string{`
				CREATE TABLE messages (
					id             TEXT PRIMARY KEY,
					subject        TEXT NOT NULL DEFAULT '',
					sender         TEXT NOT NULL DEFAULT '',
					recipients     TEXT NOT NULL DEFAULT '',
					body           TEXT NOT NULL DEFAULT '',
					receivedat     TIMESTAMP NOT NULL,
					conversationid TEXT NOT NULL DEFAULT '',
					isread         BOOLEAN NOT NULL DEFAULT 0,
					folder         TEXT NOT NULL DEFAULT '',
					categories     TEXT NOT NULL DEFAULT '[]'
				)`,
			},
			Down: []string{"DROP TABLE messages"},
		},
		{
			Id: "2_annotations",
			Up: []string{`
				CREATE TABLE annotations (
					messageid    TEXT PRIMARY KEY REFERENCES messages(id),
					category     TEXT NOT NULL DEFAULT '',
					confidence   REAL,
					reasoning    TEXT NOT NULL DEFAULT '',
					summary      TEXT NOT NULL DEFAULT '',
					usercategory TEXT NOT NULL DEFAULT ''
				)`,
			},
			Down: []string{"DROP TABLE annotations"},
		},
		{
			Id: "3_messages_folder_idx",
			Up: []string{
				"CREATE INDEX idx_messages_folder ON messages(folder, receivedat)",
			},
			Down: []string{"DROP INDEX idx_messages_folder"},
		},
	},
}
