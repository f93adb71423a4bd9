// Package project manages the project-level .skillset/project.yaml
// configuration: which worker groups (or preset) a repository wants loaded,
// the install mode, and the destination. It adds and removes group
// references and drives sync, which re-resolves the selection and
// materializes it at the project's destination.
package project
