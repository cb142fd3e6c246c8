package database

import (
	"context"
	"fmt"

	"paper-cloud/config"
	"paper-cloud/pkgs/consts"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"
)

// InitMilvus 初始化Milvus客户端，并确保集合已创建、加载
func InitMilvus(ctx context.Context) (client.Client, error) {
	cfg := config.GetConfig().Milvus

	milvusClient, err := client.NewClient(ctx, client.Config{
		Address: cfg.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接到Milvus: %w", err)
	}

	if err := ensureCollection(ctx, milvusClient, &cfg); err != nil {
		return nil, err
	}

	return milvusClient, nil
}

// ensureCollection 集合不存在时创建并建索引
func ensureCollection(ctx context.Context, cli client.Client, cfg *config.MilvusConfig) error {
	collectionName := cfg.CollectionName
	if collectionName == "" {
		collectionName = consts.CollectionNamePaperChunks
	}

	exists, err := cli.HasCollection(ctx, collectionName)
	if err != nil {
		return fmt.Errorf("检查集合失败: %w", err)
	}

	if !exists {
		schema := entity.NewSchema().
			WithName(collectionName).
			WithDescription("论文文本块向量").
			WithField(entity.NewField().
				WithName(consts.FieldNameID).
				WithDataType(entity.FieldTypeVarChar).
				WithMaxLength(64).
				WithIsPrimaryKey(true)).
			WithField(entity.NewField().
				WithName(consts.FieldNameContent).
				WithDataType(entity.FieldTypeVarChar).
				WithMaxLength(8192)).
			WithField(entity.NewField().
				WithName(consts.FieldNamePaperID).
				WithDataType(entity.FieldTypeVarChar).
				WithMaxLength(64)).
			WithField(entity.NewField().
				WithName(consts.FieldNamePaperTitle).
				WithDataType(entity.FieldTypeVarChar).
				WithMaxLength(512)).
			WithField(entity.NewField().
				WithName(consts.FieldNameSectionTitle).
				WithDataType(entity.FieldTypeVarChar).
				WithMaxLength(512)).
			WithField(entity.NewField().
				WithName(consts.FieldNameChunkIndex).
				WithDataType(entity.FieldTypeInt32)).
			WithField(entity.NewField().
				WithName(consts.FieldNameVector).
				WithDataType(entity.FieldTypeFloatVector).
				WithDim(int64(cfg.VectorDimension)))

		if err := cli.CreateCollection(ctx, schema, 1); err != nil {
			return fmt.Errorf("创建集合失败: %w", err)
		}

		idx, err := cfg.GetMilvusIndex()
		if err != nil {
			return fmt.Errorf("构建索引配置失败: %w", err)
		}
		if err := cli.CreateIndex(ctx, collectionName, consts.FieldNameVector, idx, false); err != nil {
			return fmt.Errorf("创建索引失败: %w", err)
		}
	}

	if err := cli.LoadCollection(ctx, collectionName, false); err != nil {
		return fmt.Errorf("加载集合失败: %w", err)
	}
	return nil
}
