package repository

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"catalogo/internal/apierror"
	"catalogo/internal/config"
	"catalogo/internal/model"
)

// ErrNoEncontrado is returned by every repository when a document does not
// exist. Services wrap it with an entity-specific message.
var ErrNoEncontrado = apierror.NotFound("documento no encontrado")

// NewCliente builds the process-wide Firestore client. It is constructed once
// at startup and injected into the repositories; the client is safe for
// concurrent use.
func NewCliente(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	var opts []option.ClientOption
	switch {
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	default:
		return nil, errors.New("no se encontró la variable de entorno GOOGLE_APPLICATION_CREDENTIALS o GOOGLE_APPLICATION_CREDENTIALS_JSON")
	}

	proyecto := cfg.ProjectID
	if proyecto == "" {
		proyecto = firestore.DetectProjectID
	}
	return firestore.NewClient(ctx, proyecto, opts...)
}

// paraEscritura strips the injected "id" key and translates the
// server-timestamp placeholder into Firestore's native sentinel.
func paraEscritura(doc model.Documento) map[string]any {
	out := make(map[string]any, len(doc))
	for campo, valor := range doc {
		if campo == "id" {
			continue
		}
		if model.EsServerTimestamp(valor) {
			out[campo] = firestore.ServerTimestamp
			continue
		}
		out[campo] = valor
	}
	return out
}

func esNoEncontrado(err error) bool {
	return status.Code(err) == codes.NotFound
}
