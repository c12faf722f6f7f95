package repoargs

type RepositoryName string

const (
	AccountRepoName  RepositoryName = "account"
	TransferRepoName RepositoryName = "transfer"
	EntryRepoName    RepositoryName = "entry"
)
