package data

import (
	_ "embed"
)

//go:embed seed/communities.json
var SeedCommunities []byte

//go:embed seed/opportunities.json
var SeedOpportunities []byte

//go:embed initdb/mariadb/002-ddl-privileges.sql
var InitdbMariaDBPrivileges string
